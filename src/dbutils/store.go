package dbutils

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/store"
)

// NewStore opens the store selected by cfg.StoreDriver.
func NewStore(cfg *config.JournalConfig) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := InitPostgresWithUrl(cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("NewStore: %w", err)
		}

		log.Info("NewStore: using postgres store")
		return store.NewPostgresStore(db), nil
	case config.StoreDriverCSV:
		st, err := store.NewCSVStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("NewStore: %w", err)
		}

		log.Infof("NewStore: using csv store in %s", st.Dir())
		return st, nil
	default:
		return nil, fmt.Errorf("NewStore: %w: %q", config.InvalidStoreDriverErr, cfg.StoreDriver)
	}
}
