package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN", "secret")
	t.Setenv("BROADCAST_CHANNEL_ID", "123456789012345678")
}

func TestFromViperDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_USER_IDS", "111, 222,,")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "EET", cfg.Timezone)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 100*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, 200*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.SurfaceGrace)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.AllowedUsers.Allowed("111"))
	assert.True(t, cfg.AllowedUsers.Allowed("222"))
	assert.False(t, cfg.AllowedUsers.Allowed("333"))
}

func TestFromViperOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEBOUNCE_INTERVAL", "250ms")
	t.Setenv("RETRY_ATTEMPTS", "5")
	t.Setenv("TIMEZONE", "Europe/Moscow")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromViperValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{"TOKEN": ""}},
		{name: "missing channel", env: map[string]string{"BROADCAST_CHANNEL_ID": ""}},
		{name: "channel not a snowflake", env: map[string]string{"BROADCAST_CHANNEL_ID": "general"}},
		{name: "bad allow list", env: map[string]string{"ALLOWED_USER_IDS": "111,bob"}},
		{name: "bad database url", env: map[string]string{"DATABASE_URL": "localhost"}},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "no attempts", env: map[string]string{"RETRY_ATTEMPTS": "0"}},
		{name: "negative grace", env: map[string]string{"SURFACE_GRACE": "-1s"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := fromViper(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestParseAllowList(t *testing.T) {
	list, err := ParseAllowList("")
	require.NoError(t, err)
	assert.False(t, list.Allowed(""))

	_, err = ParseAllowList("12a")
	assert.Error(t, err)
}
