package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"rsvpbot/pkg/tz"
)

type Config struct {
	Token              string
	BroadcastChannelID string
	AllowedUsers       AllowList
	DatabaseURL        string
	RedisURL           string
	MigrationsPath     string
	Timezone           string
	DefaultLocale      string

	DebounceInterval time.Duration
	RetryBaseDelay   time.Duration
	RetryAttempts    int
	SurfaceGrace     time.Duration
	SessionTTL       time.Duration

	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	"DATABASE_URL":      "postgres://localhost:5432/rsvpbot?sslmode=disable",
	"REDIS_URL":         "redis://localhost:6379/0",
	"MIGRATIONS_PATH":   "migrations",
	"TIMEZONE":          tz.Default,
	"DEFAULT_LOCALE":    "en",
	"DEBOUNCE_INTERVAL": 100 * time.Millisecond,
	"RETRY_BASE_DELAY":  200 * time.Millisecond,
	"RETRY_ATTEMPTS":    3,
	"SURFACE_GRACE":     100 * time.Millisecond,
	"SESSION_TTL":       24 * time.Hour,
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "text",
}

// Load reads an optional .env file, an optional config.yaml (working
// directory or ./config) and the environment, then validates the result.
// Environment variables win over the file.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	allowed, err := ParseAllowList(v.GetString("ALLOWED_USER_IDS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:              v.GetString("TOKEN"),
		BroadcastChannelID: v.GetString("BROADCAST_CHANNEL_ID"),
		AllowedUsers:       allowed,
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		Timezone:           v.GetString("TIMEZONE"),
		DefaultLocale:      v.GetString("DEFAULT_LOCALE"),
		DebounceInterval:   v.GetDuration("DEBOUNCE_INTERVAL"),
		RetryBaseDelay:     v.GetDuration("RETRY_BASE_DELAY"),
		RetryAttempts:      v.GetInt("RETRY_ATTEMPTS"),
		SurfaceGrace:       v.GetDuration("SURFACE_GRACE"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}

	if strings.TrimSpace(c.BroadcastChannelID) == "" {
		return fmt.Errorf("config: BROADCAST_CHANNEL_ID is required")
	}
	if !isSnowflake(c.BroadcastChannelID) {
		return fmt.Errorf("config: BROADCAST_CHANNEL_ID must be a Discord channel id (digits only)")
	}

	if err := validateURL("DATABASE_URL", c.DatabaseURL); err != nil {
		return err
	}
	if err := validateURL("REDIS_URL", c.RedisURL); err != nil {
		return err
	}

	if _, err := tz.Load(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE: %w", err)
	}

	if c.RetryAttempts < 1 {
		return fmt.Errorf("config: RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	for name, d := range map[string]time.Duration{
		"DEBOUNCE_INTERVAL": c.DebounceInterval,
		"RETRY_BASE_DELAY":  c.RetryBaseDelay,
		"SURFACE_GRACE":     c.SurfaceGrace,
		"SESSION_TTL":       c.SessionTTL,
	} {
		if d < 0 {
			return fmt.Errorf("config: %s must not be negative, got %s", name, d)
		}
	}
	if c.SessionTTL == 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	return nil
}

func validateURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: %s invalid (%q): %w", name, raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: %s invalid (%q): missing scheme or host", name, raw)
	}
	return nil
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
