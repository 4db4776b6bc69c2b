package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	TelegramToken string
	VKToken       string
	VKGroupID     string
	RedisURL      string
	Corpus        CorpusConfig
	Notifier      NotifierConfig
}

// CorpusConfig locates and decodes the question archive
type CorpusConfig struct {
	Path     string
	Encoding string
}

// NotifierConfig points the error relay at an operator chat.
// Both fields must be set for the relay to be enabled.
type NotifierConfig struct {
	BotToken string
	ChatID   int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TG_BOT_TOKEN"),
		VKToken:       os.Getenv("VK_TOKEN"),
		VKGroupID:     os.Getenv("VK_GROUP_ID"),
		RedisURL:      os.Getenv("REDIS_URL"),
		Corpus: CorpusConfig{
			Path:     getEnv("QUESTIONS_PATH", "quiz_questions/3f15.txt"),
			Encoding: getEnv("QUESTIONS_ENCODING", "koi8-r"),
		},
		Notifier: NotifierConfig{
			BotToken: os.Getenv("LOGGER_BOT_TOKEN"),
		},
	}

	if raw := os.Getenv("DEVELOPER_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DEVELOPER_CHAT_ID must be an integer: %w", err)
		}
		cfg.Notifier.ChatID = chatID
	}

	if cfg.Notifier.BotToken != "" && cfg.Notifier.ChatID == 0 {
		return nil, fmt.Errorf("DEVELOPER_CHAT_ID is required when LOGGER_BOT_TOKEN is set")
	}

	return cfg, nil
}

// ValidateTelegram checks the fields the Telegram bot requires
func (c *Config) ValidateTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TG_BOT_TOKEN is required")
	}
	return nil
}

// ValidateVK checks the fields the VK bot requires
func (c *Config) ValidateVK() error {
	if c.VKToken == "" {
		return fmt.Errorf("VK_TOKEN is required")
	}
	if c.VKGroupID == "" {
		return fmt.Errorf("VK_GROUP_ID is required")
	}
	return nil
}

// NotifierEnabled reports whether the operator error relay is configured
func (c *Config) NotifierEnabled() bool {
	return c.Notifier.BotToken != "" && c.Notifier.ChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
