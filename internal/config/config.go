// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Telegram
	BotToken      string
	AdminUsername string
	Debug         bool

	// Polling
	PollTimeout        int
	DropPendingUpdates bool
	ReconnectDelay     time.Duration

	// Logging
	LogLevel string
	LogPath  string

	// App Data Directory
	AppDataDir string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	config := &Config{
		BotToken:           getEnv("BOT_TOKEN", ""),
		AdminUsername:      strings.TrimPrefix(getEnv("ADMIN_USERNAME", ""), "@"),
		Debug:              getEnvBool("BOT_DEBUG", false),
		PollTimeout:        getEnvInt("POLL_TIMEOUT", 60),
		DropPendingUpdates: getEnvBool("DROP_PENDING_UPDATES", true),
		ReconnectDelay:     getEnvDuration("RECONNECT_DELAY", 10*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPath:            getEnv("LOG_PATH", ""),
		AppDataDir:         getEnv("APP_DATA_DIR", "./data"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}

	if c.PollTimeout < 0 {
		return fmt.Errorf("POLL_TIMEOUT must be non-negative, got %d", c.PollTimeout)
	}

	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("RECONNECT_DELAY must be positive, got %s", c.ReconnectDelay)
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
