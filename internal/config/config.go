// Package config holds the gatehouse server configuration: the listener, the
// authentication strategy selection, session lifecycle, and storage location.
package config

import (
	"time"
)

// Config is the top-level server configuration.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Auth selects and configures the authentication strategy guarding the
	// gated API surface.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Session configures the session cookie and lifetime.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Storage configures the on-disk database.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// ServerConfig configures the HTTP server. TLS is left to a fronting proxy.
type ServerConfig struct {
	// Addr is the address to listen on (e.g., "127.0.0.1:8080").
	// Defaults to "127.0.0.1:8080" (localhost only) if empty.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// LogLevel sets the minimum log level: "debug", "info", "warn", "error".
	// Defaults to "info" if empty.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// AuthConfig selects the request authentication strategy.
type AuthConfig struct {
	// Type selects the strategy: "null", "basic", "session", "session_exp",
	// or "session_db". Defaults to "session".
	Type string `yaml:"type" mapstructure:"type"`

	// ExcludedPaths lists the paths the request gate lets through without
	// authentication. Entries ending in "*" match by prefix; everything else
	// matches exactly, ignoring a trailing slash.
	ExcludedPaths []string `yaml:"excluded_paths" mapstructure:"excluded_paths"`

	// PasswordHasher selects the hash scheme for new passwords: "bcrypt" or
	// "argon2id". Stored hashes of either scheme always verify. Defaults to
	// "bcrypt".
	PasswordHasher string `yaml:"password_hasher" mapstructure:"password_hasher"`
}

// SessionConfig configures the session cookie and lifetime.
type SessionConfig struct {
	// CookieName is the name of the session cookie.
	// Defaults to "gatehouse_session".
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`

	// Duration is the session lifetime (e.g., "24h", "30m"). Empty,
	// unparsable, or non-positive values mean sessions never expire.
	Duration string `yaml:"duration" mapstructure:"duration"`
}

// StorageConfig configures the bbolt database file.
type StorageConfig struct {
	// Path is the database file path. Defaults to "gatehouse.db".
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultExcludedPaths are the paths open without authentication when none
// are configured.
var DefaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/unauthorized/",
	"/api/v1/forbidden/",
	"/api/v1/auth_session/login/",
	"/api/v1/openapi.yaml",
	"/api/v1/docs*",
}

// TTL parses the configured session duration. Empty, unparsable, or
// non-positive durations yield zero, which callers treat as "never expire".
func (c SessionConfig) TTL() time.Duration {
	if c.Duration == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Duration)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// SetDefaults applies default values to the configuration.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Auth.Type == "" {
		c.Auth.Type = "session"
	}
	if len(c.Auth.ExcludedPaths) == 0 {
		c.Auth.ExcludedPaths = DefaultExcludedPaths
	}
	if c.Auth.PasswordHasher == "" {
		c.Auth.PasswordHasher = "bcrypt"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "gatehouse_session"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "gatehouse.db"
	}
}
