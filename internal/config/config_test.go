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

// chdirTemp isolates a test from .calc.yaml and .env files in the repo.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load(viper.New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIPath, cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.ErrorBannerTTL)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Nil(t, cfg.LogOutputPaths())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CALC_ENDPOINT", "http://calc.internal:9000/api/calculate")
	t.Setenv("CALC_ERROR_BANNER_TTL", "2s")
	t.Setenv("CALC_LOG_LEVEL", "debug")
	t.Setenv("CALC_TELEMETRY_ENABLED", "true")

	cfg, err := Load(viper.New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://calc.internal:9000/api/calculate", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.ErrorBannerTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := "endpoint: http://example.test/api/calculate\nrequest_timeout: 3s\nlog:\n  file: calc.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".calc.yaml"), []byte(content), 0o644))

	cfg, err := Load(viper.New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/api/calculate", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"calc.log"}, cfg.LogOutputPaths())
}

func TestLoadDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := chdirTemp(t)

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CALC_LISTEN_ADDR=:9999\nCALC_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("CALC_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("CALC_LISTEN_ADDR") })

	cfg, err := Load(viper.New(), Options{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(viper.New(), Options{File: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Endpoint: DefaultAPIPath, ErrorBannerTTL: time.Second}
	require.NoError(t, valid.Validate())

	tests := map[string]Config{
		"relative endpoint": {Endpoint: "/api/calculate", ErrorBannerTTL: time.Second},
		"bad scheme":        {Endpoint: "ftp://host/api", ErrorBannerTTL: time.Second},
		"zero banner":       {Endpoint: DefaultAPIPath},
		"negative timeout":  {Endpoint: DefaultAPIPath, ErrorBannerTTL: time.Second, RequestTimeout: -time.Second},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}
