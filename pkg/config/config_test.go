package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ENGINE_DIFFICULTY", "ENGINE_SEED", "ENGINE_THINK_TIMEOUT",
		"SERVER_ADDR", "SERVER_IDLE_TIMEOUT", "SSH_ADDR", "HTTP_ADDR", "CHESSTERM_THEME"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Difficulty != 2 {
		t.Errorf("difficulty = %d", cfg.Engine.Difficulty)
	}
	if cfg.Engine.ThinkTimeout != DefaultThinkTimeout {
		t.Errorf("think timeout = %s", cfg.Engine.ThinkTimeout)
	}
	if cfg.Server.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("idle timeout = %s", cfg.Server.IdleTimeout)
	}
	// Set but empty disables the listener.
	if cfg.SSH.Addr != "" || cfg.HTTP.Addr != "" {
		t.Errorf("ssh %q http %q", cfg.SSH.Addr, cfg.HTTP.Addr)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENGINE_DIFFICULTY", "4")
	t.Setenv("ENGINE_SEED", "42")
	t.Setenv("ENGINE_THINK_TIMEOUT", "2s")
	t.Setenv("SERVER_ADDR", ":4000")
	t.Setenv("HTTP_ADDR", ":8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Difficulty != 4 || cfg.Engine.Seed != 42 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Engine.ThinkTimeout != 2*time.Second {
		t.Errorf("think timeout = %s", cfg.Engine.ThinkTimeout)
	}
	if cfg.Server.Addr != ":4000" || cfg.HTTP.Addr != ":8080" {
		t.Errorf("server %q http %q", cfg.Server.Addr, cfg.HTTP.Addr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{"ENGINE_DIFFICULTY", "hard"},
		{"ENGINE_DIFFICULTY", "0"},
		{"ENGINE_DIFFICULTY", "6"},
		{"ENGINE_SEED", "x"},
		{"ENGINE_THINK_TIMEOUT", "soon"},
		{"SERVER_IDLE_TIMEOUT", "-1m"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
