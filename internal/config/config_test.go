package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTFOLIO_API_BASE_URL", "https://api.test///")
	t.Setenv("PORTFOLIO_API_MAX_ATTEMPTS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://api.test" {
		t.Fatalf("base url = %q", cfg.APIBaseURL)
	}
	if cfg.APIMaxAttempts != 1 {
		t.Fatalf("max attempts = %d", cfg.APIMaxAttempts)
	}
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("server addr = %q", cfg.ServerAddr)
	}
	if cfg.APITimeout() != 15*time.Second {
		t.Fatalf("timeout = %v", cfg.APITimeout())
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("PORTFOLIO_API_TIMEOUT_MS", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed timeout")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Fatalf("level(%q) = %v want %v", in, got, want)
		}
	}
}
