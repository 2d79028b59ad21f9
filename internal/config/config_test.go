package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				BotToken:       "test-token",
				AdminUsername:  "admin",
				PollTimeout:    60,
				ReconnectDelay: time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing bot token",
			config: &Config{
				AdminUsername:  "admin",
				ReconnectDelay: time.Second,
			},
			wantErr: true,
		},
		{
			name: "missing admin",
			config: &Config{
				BotToken:       "test-token",
				ReconnectDelay: time.Second,
			},
			wantErr: true,
		},
		{
			name: "negative poll timeout",
			config: &Config{
				BotToken:       "test-token",
				AdminUsername:  "admin",
				PollTimeout:    -1,
				ReconnectDelay: time.Second,
			},
			wantErr: true,
		},
		{
			name: "zero reconnect delay",
			config: &Config{
				BotToken:      "test-token",
				AdminUsername: "admin",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing required env var", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")
		t.Setenv("ADMIN_USERNAME", "admin")
		_, err := Load()
		if err == nil {
			t.Error("Load() should fail when BOT_TOKEN is missing")
		}
	})

	t.Run("valid config", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "test-token")
		t.Setenv("ADMIN_USERNAME", "@admin")
		t.Setenv("POLL_TIMEOUT", "30")
		t.Setenv("RECONNECT_DELAY", "5s")
		t.Setenv("BOT_DEBUG", "true")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_PATH", "/var/log/bot.log")
		t.Setenv("APP_DATA_DIR", "/srv/bot")

		config, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "test-token", config.BotToken)
		assert.Equal(t, "admin", config.AdminUsername)
		assert.Equal(t, 30, config.PollTimeout)
		assert.Equal(t, 5*time.Second, config.ReconnectDelay)
		assert.True(t, config.Debug)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "/var/log/bot.log", config.LogPath)
		assert.Equal(t, "/srv/bot", config.AppDataDir)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "test-token")
		t.Setenv("ADMIN_USERNAME", "admin")
		t.Setenv("POLL_TIMEOUT", "abc")
		t.Setenv("RECONNECT_DELAY", "soon")
		t.Setenv("DROP_PENDING_UPDATES", "maybe")

		config, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 60, config.PollTimeout)
		assert.Equal(t, 10*time.Second, config.ReconnectDelay)
		assert.True(t, config.DropPendingUpdates)
	})
}
