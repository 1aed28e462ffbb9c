package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings shared by the web server and the bot.
type Config struct {
	Addr          string
	DatabaseURL   string
	TelegramToken string
	SecretKey     string
	PageSize      int
	UploadDir     string
	HTMLDir       string
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables (a .env file is
// picked up if present) with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:          strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SecretKey:     strings.TrimSpace(os.Getenv("SECRET_KEY")),
		PageSize:      parsePositiveInt(strings.TrimSpace(os.Getenv("PAGE_SIZE"))),
		UploadDir:     strings.TrimSpace(os.Getenv("UPLOAD_DIR")),
		HTMLDir:       strings.TrimSpace(os.Getenv("HTML_DIR")),
		SessionTTL:    parseHours(strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "travel_diary.db"
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = 3
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	if cfg.HTMLDir == "" {
		cfg.HTMLDir = "ui/html"
	}

	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	if cfg.SecretKey == "" {
		return cfg, fmt.Errorf("SECRET_KEY is required")
	}

	return cfg, nil
}

// RequireTelegram checks the field only the bot binary needs.
func (c Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return nil
}

func parsePositiveInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
