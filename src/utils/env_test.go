package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DEV_ENV_FILENAME), []byte("JOURNAL_TEST_DATA_DIR=/tmp/journal\n"), 0o644))

	t.Setenv("ENV", "")
	t.Setenv("JOURNAL_TEST_DATA_DIR", "")
	os.Unsetenv("JOURNAL_TEST_DATA_DIR")

	require.NoError(t, InitEnvironmentVariables(dir, "development"))

	value, err := GetEnv("JOURNAL_TEST_DATA_DIR")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal", value)

	t.Run("missing file falls back to the process environment", func(t *testing.T) {
		assert.NoError(t, InitEnvironmentVariables(dir, "production"))
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("JOURNAL_TEST_EMPTY", "")

	_, err := GetEnv("JOURNAL_TEST_EMPTY")
	assert.Error(t, err)

	assert.Equal(t, "fallback", GetEnvOrDefault("JOURNAL_TEST_EMPTY", "fallback"))

	t.Setenv("JOURNAL_TEST_SET", "value")
	assert.Equal(t, "value", GetEnvOrDefault("JOURNAL_TEST_SET", "fallback"))
}
