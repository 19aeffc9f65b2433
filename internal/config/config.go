package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr  string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"json"`

	// StoreBackend selects where game states live: sqlite, redis or memory.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string `env:"DB_PATH" envDefault:"data/countryquiz.db"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix  string `env:"REDIS_PREFIX" envDefault:"countryquiz:"`

	// Sessions idle for SessionIdleTimeout are dropped from memory and
	// reloaded from the store on the next request.
	SessionIdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`

	CatalogPath string `env:"CATALOG_PATH"`
	QuizSeed    uint64 `env:"QUIZ_SEED" envDefault:"0"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.StoreBackend {
	case "sqlite", "redis", "memory":
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.SessionIdleTimeout <= 0 || cfg.SessionSweepInterval <= 0 {
		return nil, fmt.Errorf("session timeouts must be positive")
	}
	return &cfg, nil
}
