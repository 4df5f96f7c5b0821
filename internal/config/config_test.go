package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
storage_root: "/srv/nas"
log_level: debug
gc:
  ttl_hours: 2
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/nas", cfg.StorageRoot)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.GCTTL())
	assert.Equal(t, 30*time.Minute, cfg.GCInterval())
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout())
	assert.True(t, cfg.StripsRootName())
	assert.Zero(t, cfg.MaxUploadBytes())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
storage_root: "/srv/nas"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("STORAGE_ROOT", "/data")
	t.Setenv("STRIP_ROOT_NAME", "false")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("RATE_LIMIT_RPS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "/data", cfg.StorageRoot)
	assert.False(t, cfg.StripsRootName())
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
	assert.Equal(t, 11, cfg.RateLimit.Burst)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, defaultStorageRoot, cfg.StorageRoot)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "log_level: chatty\n"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestLoad_BadEnvNumber(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("GC_TTL_HOURS", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GC_TTL_HOURS")
}
