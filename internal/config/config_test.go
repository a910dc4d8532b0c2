package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_NAME", "tracker-test")
	t.Setenv("STORAGE_MODE", "remote")
	t.Setenv("API_BASE_URL", "http://api.local:9000")
	t.Setenv("API_MAX_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("SERVER_DB_PATH", "/tmp/api-test.db")

	cfg := Get()

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "tracker-test", cfg.Logger.AppName)
	assert.Equal(t, ModeRemote, cfg.Storage.Mode)
	assert.Equal(t, "http://api.local:9000", cfg.API.BaseURL)
	assert.Equal(t, float32(2.5), cfg.API.MaxRequestsPerSecond)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "/tmp/api-test.db", cfg.Server.DBPath)
}

func Test_Config_FileValuesAreUsed(t *testing.T) {
	cfg, err := loadConfig("../../configs/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, cfg.Storage.Mode)
	assert.Equal(t, "./data/tracker.db", cfg.Storage.Path)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Server.MetricsEnabled)
}

func Test_Config_InvalidValuesAreReported(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "logger:\n  log_level: LOUD\nstorage:\n  mode: cloud\nserver:\n  db_path: \"\"\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	_, err := loadConfig(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log_level")
	assert.Contains(t, err.Error(), "unknown storage mode")
	assert.Contains(t, err.Error(), "db_path")
}
