package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string `env:"PORTFOLIO_API_BASE_URL" envDefault:"https://backend-web-7mkm.onrender.com"`
	Dev             bool   `env:"PORTFOLIO_DEV" envDefault:"false"`
	APITimeoutMs    int    `env:"PORTFOLIO_API_TIMEOUT_MS" envDefault:"15000"`
	APIRateLimitRPS int    `env:"PORTFOLIO_API_RATE_LIMIT_RPS" envDefault:"10"`
	APIMaxAttempts  int    `env:"PORTFOLIO_API_MAX_ATTEMPTS" envDefault:"3"`

	ServerAddr string `env:"PORTFOLIO_SERVER_ADDR" envDefault:":8080"`
	OutputDir  string `env:"PORTFOLIO_OUTPUT_DIR" envDefault:"out"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIMaxAttempts <= 0 {
		cfg.APIMaxAttempts = 1
	}
	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func (c Config) APITimeout() time.Duration {
	if c.APITimeoutMs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.APITimeoutMs) * time.Millisecond
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
