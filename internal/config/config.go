package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDatabaseDriver = "sqlite3"
	DefaultDatabaseDSN    = "file::memory:?cache=shared"
	DefaultStartBalance   = 1000
	DefaultDealerDelay    = 800 * time.Millisecond
)

type Config struct {
	BotToken       string
	DatabaseDriver string
	DatabaseDSN    string
	StartBalance   int
	DealerDelay    time.Duration
	LogLevel       logrus.Level
	// DeckSeed makes shuffles reproducible when non-zero.
	DeckSeed uint64
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		DatabaseDriver: getenv("DATABASE_DRIVER", DefaultDatabaseDriver),
		DatabaseDSN:    getenv("DATABASE_DSN", DefaultDatabaseDSN),
		StartBalance:   DefaultStartBalance,
		DealerDelay:    DefaultDealerDelay,
		LogLevel:       logrus.InfoLevel,
	}

	if v := os.Getenv("START_BALANCE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid START_BALANCE %q", v)
		}
		cfg.StartBalance = n
	}

	if v := os.Getenv("DEALER_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEALER_DELAY: %w", err)
		}
		cfg.DealerDelay = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("DECK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DECK_SEED: %w", err)
		}
		cfg.DeckSeed = seed
	}

	switch cfg.DatabaseDriver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// RequireBotToken fails when the Telegram token is missing.
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
