package journal

import (
	"context"
	"fmt"

	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/dbutils"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/ingestion"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
)

// Setup wires a Service from cfg and loads the stored ledger.
func Setup(ctx context.Context, cfg *config.JournalConfig, bus *eventpubsub.Bus) (*Service, error) {
	st, err := dbutils.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	profiles, err := ingestion.LoadProfiles(cfg.BrokerProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	svc, err := NewService(st, bus, profiles, matching.MatchOptions{Workers: cfg.MatchWorkers})
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	if err := svc.Load(ctx); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	return svc, nil
}
