package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("NETLIST_API_URL", "http://api.test/api")
	t.Setenv("NETLIST_API_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://api.test/api", cfg.Client.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
}

func TestLoadClientFile(t *testing.T) {
	base := ClientConfig{APIURL: "http://a/api", AuthURL: "http://auth/api", Timeout: time.Second}

	t.Run("overlays present keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netlist.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: http://b/api\ntimeout: 2m\n"), 0o600))

		cfg, err := LoadClientFile(path, base)
		require.NoError(t, err)
		assert.Equal(t, "http://b/api", cfg.APIURL)
		assert.Equal(t, "http://auth/api", cfg.AuthURL)
		assert.Equal(t, 2*time.Minute, cfg.Timeout)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadClientFile(filepath.Join(t.TempDir(), "nope.yaml"), base)
		assert.Error(t, err)
		assert.Equal(t, base, cfg)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: [\n"), 0o600))

		cfg, err := LoadClientFile(path, base)
		assert.Error(t, err)
		assert.Equal(t, base, cfg)
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	t.Setenv(key, "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration(key, time.Second))

	t.Setenv(key, "soon")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))

	os.Unsetenv(key)
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}
