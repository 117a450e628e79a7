package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "America/Lima", cfg.Dashboard.Timezone)
	assert.Equal(t, 1000, cfg.Dashboard.SampleSize)
	assert.Equal(t, int64(30*1024*1024), cfg.Media.MaxFileSize)
	assert.Equal(t, 10*time.Minute, cfg.Cache.HistogramTTL)
	assert.Equal(t, 5*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, "http://localhost:8000", cfg.Media.PublicBaseURL)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nDB_NAME=crm\nWHATSAPP_API_URL=https://graph.example.com/v1/\nCACHE_DASHBOARD_TTL=30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "crm", cfg.Database.DBName)
	assert.Equal(t, "https://graph.example.com/v1", cfg.WhatsApp.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Cache.DashboardTTL)
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=crm")
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_PORT=6380\n"), 0o600))
	t.Setenv("REDIS_PORT", "6390")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6390", cfg.GetRedisAddr())
}

func TestLoadFile_InvalidTimezone(t *testing.T) {
	t.Setenv("DASHBOARD_TIMEZONE", "Mars/Olympus")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
