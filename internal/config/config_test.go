package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_TYPE", "DATABASE_URL", "APP_TIMEZONE", "DIGEST_HOUR",
		"CORS_ALLOW_ORIGINS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHANNEL_ID", "CONTENT_CACHE_SIZE"} {
		t.Setenv(key, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().HTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.DigestEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("APP_TIMEZONE", "Asia/Seoul")
	t.Setenv("DIGEST_HOUR", "21")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHANNEL_ID", "@channel")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.Equal(t, 21, cfg.DigestHour)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.DigestEnabled())
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	// godotenv never overrides variables that are set, even to ""
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DIGEST_HOUR", "25")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("DIGEST_HOUR", "8")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("GIN_MODE", "verbose")
	_, err = Load("")
	assert.Error(t, err)
}
