package config

import (
	"fmt"
	"net/url"
	"os"
	"strings" // For LogLevel normalization

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPracticumBaseURL = "https://practicum.yandex.ru/api"
	defaultRetrySchedule    = "@every 10m" // RETRY_TIME of 600 seconds
	defaultLogFile          = "error.log"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken   string
	TelegramToken    string
	TelegramChatID   string // Numeric chat ID or @channel username
	PracticumBaseURL string
	RetrySchedule    string // Descriptor or cron expression, e.g. "@every 10m"
	DatabaseURL      string // Optional; empty disables cursor persistence
	LogLevel         string
	LogFile          string
	Environment      string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing secrets are not an error here; see CheckTokens.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	cfg.PracticumBaseURL = strings.TrimRight(getenvDefault("PRACTICUM_BASE_URL", defaultPracticumBaseURL), "/")
	u, err := url.Parse(cfg.PracticumBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PRACTICUM_BASE_URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid PRACTICUM_BASE_URL: %q is not an absolute URL", cfg.PracticumBaseURL)
	}

	cfg.RetrySchedule = getenvDefault("RETRY_SCHEDULE", defaultRetrySchedule)
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "debug"))
	cfg.LogFile = getenvDefault("LOG_FILE", defaultLogFile)
	cfg.Environment = strings.ToLower(getenvDefault("ENVIRONMENT", "development"))

	return cfg, nil
}

// CheckTokens logs every missing secret at fatal severity and reports whether all of them are set.
// It never exits the process; the caller decides what to do.
func CheckTokens(cfg *AppConfig, log *logrus.Entry) bool {
	tokens := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", cfg.PracticumToken},
		{"TELEGRAM_TOKEN", cfg.TelegramToken},
		{"TELEGRAM_CHAT_ID", cfg.TelegramChatID},
	}
	ok := true
	for _, t := range tokens {
		if t.value == "" {
			log.WithField("variable", t.name).Log(logrus.FatalLevel, "Required environment variable is not set")
			ok = false
		}
	}
	return ok
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
