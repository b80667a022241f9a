package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	// Address the HTTP server listens on
	HTTPAddr string
	// Database driver: sqlite or postgres
	DBType string
	// Database DSN; a file path for sqlite
	DatabaseURL string
	// Zone that defines calendar days for progress tracking
	Location *time.Location
	LogLevel  string
	LogFormat string
	GinMode   string
	// Allowed CORS origins; "*" allows any
	CORSAllowOrigins []string
	// Hour of day (0-23) the lesson digest is sent
	DigestHour int
	// Telegram credentials; the digest is disabled unless both are set
	TelegramBotToken  string
	TelegramChannelID string
	// Number of dates kept in the lesson cache
	ContentCacheSize int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:         ":8000",
		DBType:           "sqlite",
		DatabaseURL:      "data/aihub.db",
		Location:         time.Local,
		LogLevel:         "info",
		LogFormat:        "json",
		GinMode:          "release",
		CORSAllowOrigins: []string{"*"},
		DigestHour:       8,
		ContentCacheSize: 128,
	}
}

// Load reads the configuration from the environment after loading envFile,
// if it exists. Unset variables keep their defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DBType = strings.ToLower(getEnv("DB_TYPE", cfg.DBType))
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChannelID = os.Getenv("TELEGRAM_CHANNEL_ID")

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.CORSAllowOrigins = splitList(v)
	}

	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}

	var err error
	if cfg.DigestHour, err = getInt("DIGEST_HOUR", cfg.DigestHour); err != nil {
		return nil, err
	}
	if cfg.DigestHour < 0 || cfg.DigestHour > 23 {
		return nil, fmt.Errorf("DIGEST_HOUR must be between 0 and 23, got %d", cfg.DigestHour)
	}
	if cfg.ContentCacheSize, err = getInt("CONTENT_CACHE_SIZE", cfg.ContentCacheSize); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DigestEnabled reports whether the Telegram digest can be sent.
func (c *Config) DigestEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChannelID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
