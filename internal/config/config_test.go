package config

import (
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.SetDefaults()

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:8080")
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("Server.LogLevel = %q, want %q", cfg.Server.LogLevel, "info")
	}
	if cfg.Auth.Type != "session" {
		t.Errorf("Auth.Type = %q, want %q", cfg.Auth.Type, "session")
	}
	if cfg.Auth.PasswordHasher != "bcrypt" {
		t.Errorf("Auth.PasswordHasher = %q, want %q", cfg.Auth.PasswordHasher, "bcrypt")
	}
	if cfg.Session.CookieName != "gatehouse_session" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "gatehouse_session")
	}
	if cfg.Storage.Path != "gatehouse.db" {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, "gatehouse.db")
	}
	if len(cfg.Auth.ExcludedPaths) == 0 {
		t.Error("Auth.ExcludedPaths should default to a non-empty list")
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Server: ServerConfig{Addr: ":9000"},
		Auth:   AuthConfig{Type: "basic", ExcludedPaths: []string{"/health/"}},
	}
	cfg.SetDefaults()

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Auth.Type != "basic" {
		t.Errorf("Auth.Type = %q, want %q", cfg.Auth.Type, "basic")
	}
	if len(cfg.Auth.ExcludedPaths) != 1 || cfg.Auth.ExcludedPaths[0] != "/health/" {
		t.Errorf("Auth.ExcludedPaths = %v, want [/health/]", cfg.Auth.ExcludedPaths)
	}
}

func TestSessionTTL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		duration string
		want     time.Duration
	}{
		{"", 0},
		{"24h", 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"0", 0},
		{"-5s", 0},
		{"not a duration", 0},
	}
	for _, tc := range cases {
		got := SessionConfig{Duration: tc.duration}.TTL()
		if got != tc.want {
			t.Errorf("TTL(%q) = %v, want %v", tc.duration, got, tc.want)
		}
	}
}
