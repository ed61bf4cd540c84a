package config

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

type StoreDriver string

const (
	StoreDriverCSV      StoreDriver = "csv"
	StoreDriverPostgres StoreDriver = "postgres"
)

var (
	InvalidStoreDriverErr = fmt.Errorf("invalid store driver")
	InvalidConfigErr      = fmt.Errorf("invalid config")
)

type JournalConfig struct {
	GoEnv              string
	Port               string
	DataDir            string
	StoreDriver        StoreDriver
	PostgresURL        string
	MatchWorkers       int
	BrokerProfilesFile string
	CORSOrigins        []string
	OTelEnabled        bool
	LogLevel           log.Level
}

// NewJournalConfigFromEnv reads the process environment. Call
// utils.InitEnvironmentVariables first to pick up .env files.
func NewJournalConfigFromEnv() (*JournalConfig, error) {
	cfg := &JournalConfig{
		GoEnv:              utils.GetEnvOrDefault("GO_ENV", "development"),
		Port:               utils.GetEnvOrDefault("PORT", "8080"),
		DataDir:            utils.GetEnvOrDefault("DATA_DIR", "./data"),
		StoreDriver:        StoreDriver(strings.ToLower(utils.GetEnvOrDefault("STORE_DRIVER", string(StoreDriverCSV)))),
		PostgresURL:        utils.GetEnvOrDefault("POSTGRES_URL", ""),
		BrokerProfilesFile: utils.GetEnvOrDefault("BROKER_PROFILES_FILE", ""),
	}

	for _, origin := range strings.Split(utils.GetEnvOrDefault("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	var err error
	if cfg.MatchWorkers, err = strconv.Atoi(utils.GetEnvOrDefault("MATCH_WORKERS", "0")); err != nil {
		return nil, fmt.Errorf("%w: MATCH_WORKERS: %v", InvalidConfigErr, err)
	}

	if cfg.OTelEnabled, err = strconv.ParseBool(utils.GetEnvOrDefault("OTEL_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("%w: OTEL_ENABLED: %v", InvalidConfigErr, err)
	}

	if cfg.LogLevel, err = log.ParseLevel(utils.GetEnvOrDefault("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", InvalidConfigErr, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *JournalConfig) Validate() error {
	switch c.StoreDriver {
	case StoreDriverCSV:
	case StoreDriverPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%w: POSTGRES_URL is required for the postgres store", InvalidConfigErr)
		}
	default:
		return fmt.Errorf("%w: %q", InvalidStoreDriverErr, c.StoreDriver)
	}

	if c.MatchWorkers < 0 {
		return fmt.Errorf("%w: MATCH_WORKERS must not be negative", InvalidConfigErr)
	}

	return nil
}

// ConfigureLogger applies the level and picks JSON output in production.
func (c *JournalConfig) ConfigureLogger() {
	log.SetLevel(c.LogLevel)

	if c.GoEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
