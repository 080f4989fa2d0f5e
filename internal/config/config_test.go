package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	v.SetConfigType("yaml")

	// An explicit config file that does not exist is an error, unlike the
	// search-path lookup Load uses.
	_, err := load(v)
	require.Error(t, err)

	v = viper.New()
	v.AddConfigPath(t.TempDir())
	v.SetConfigName("taskboard")
	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIBaseURL)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, 5*time.Minute, cfg.BoardCacheTTL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "", cfg.RedisAddr())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "API_BASE_URL: http://tracker.internal/api/v1/\nREDIS_HOST: cache\nLISTEN_ADDR: \":4000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taskboard.yaml"), []byte(yaml), 0o644))

	t.Setenv("LISTEN_ADDR", ":5000")
	t.Setenv("HTTP_TIMEOUT", "3s")

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("taskboard")
	v.SetConfigType("yaml")
	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://tracker.internal/api/v1", cfg.APIBaseURL)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
