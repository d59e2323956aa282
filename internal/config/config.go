package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config carries the environment-driven settings of the CLI. The engine
// itself is configuration-free; everything here selects collaborators
// around it.
type Config struct {
	// Store picks the ledger store backend: "memory" (default) or "postgres".
	Store string
	// DatabaseURL is the postgres connection string, required when
	// Store is "postgres".
	DatabaseURL string
	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string
	// KafkaTopic is the topic locked-account events are published to.
	KafkaTopic string
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	// Missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load()

	cfg := Config{
		Store:       getDefault("LEDGER_STORE", StoreMemory),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		KafkaTopic:  getDefault("KAFKA_TOPIC", "account_locked"),
		LogLevel:    getDefault("LOG_LEVEL", "error"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("LEDGER_STORE=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown LEDGER_STORE %q", cfg.Store)
	}

	return cfg, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
