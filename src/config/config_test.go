package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"GO_ENV", "PORT", "DATA_DIR", "STORE_DRIVER", "POSTGRES_URL", "MATCH_WORKERS", "BROKER_PROFILES_FILE", "CORS_ORIGINS", "OTEL_ENABLED", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestNewJournalConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewJournalConfigFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "./data", cfg.DataDir)
		assert.Equal(t, StoreDriverCSV, cfg.StoreDriver)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.Equal(t, 0, cfg.MatchWorkers)
		assert.False(t, cfg.OTelEnabled)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9000")
		t.Setenv("STORE_DRIVER", "Postgres")
		t.Setenv("POSTGRES_URL", "postgres://journal@localhost/journal")
		t.Setenv("MATCH_WORKERS", "4")
		t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://journal.example")
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := NewJournalConfigFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, 4, cfg.MatchWorkers)
		assert.Equal(t, []string{"http://localhost:3000", "https://journal.example"}, cfg.CORSOrigins)
		assert.True(t, cfg.OTelEnabled)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := NewJournalConfigFromEnv()
		assert.ErrorIs(t, err, InvalidStoreDriverErr)

		clearEnv(t)
		t.Setenv("STORE_DRIVER", "postgres")
		_, err = NewJournalConfigFromEnv()
		assert.ErrorIs(t, err, InvalidConfigErr)

		clearEnv(t)
		t.Setenv("MATCH_WORKERS", "many")
		_, err = NewJournalConfigFromEnv()
		assert.ErrorIs(t, err, InvalidConfigErr)
	})
}
