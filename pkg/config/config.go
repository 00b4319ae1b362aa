// Package config loads the ringlet server configuration from a TOML file.
//
// All fields have working defaults, so a missing config file is not an error:
// the server starts with in-memory sessions and file-backed diagram storage.
// A typical production config:
//
//	listen = ":8080"
//
//	[sessions]
//	backend = "redis"
//	ttl_hours = 24
//
//	[sessions.redis]
//	addr = "redis:6379"
//
//	[store]
//	backend = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://mongo:27017"
//	database = "ringlet"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ringlet/pkg/errors"
)

// Backend names for the sessions and store sections.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"
)

// Config is the full server configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `toml:"listen"`

	Sessions Sessions `toml:"sessions"`
	Store    Store    `toml:"store"`
	Render   Render   `toml:"render"`
}

// Sessions configures editing-session storage.
type Sessions struct {
	Backend  string `toml:"backend"` // "memory" or "redis"
	TTLHours int    `toml:"ttl_hours"`
	Redis    Redis  `toml:"redis"`
}

// Redis holds Redis connection settings.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Store configures saved-diagram persistence.
type Store struct {
	Backend string `toml:"backend"` // "file" or "mongo"
	Dir     string `toml:"dir"`     // file backend directory, empty = default
	Mongo   Mongo  `toml:"mongo"`
}

// Mongo holds MongoDB connection settings.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Render configures rendering defaults.
type Render struct {
	Title string `toml:"title"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen: ":8080",
		Sessions: Sessions{
			Backend:  SessionBackendMemory,
			TTLHours: 24,
		},
		Store: Store{
			Backend: StoreBackendFile,
		},
	}
}

// TTL returns the session time-to-live.
func (s Sessions) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// DefaultPath returns the standard config file location
// (~/.config/ringlet/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "ringlet", "config.toml"), nil
}

// Load reads a TOML config file, layering it over [Default]. An empty path
// means the default location; a missing file at the default location yields
// the defaults, while a missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeParse, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend names and ranges.
func (c *Config) Validate() error {
	switch c.Sessions.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return errors.New(errors.ErrCodeUnsupported,
			"unsupported sessions.backend %q (must be %q or %q)",
			c.Sessions.Backend, SessionBackendMemory, SessionBackendRedis)
	}
	switch c.Store.Backend {
	case StoreBackendFile, StoreBackendMongo:
	default:
		return errors.New(errors.ErrCodeUnsupported,
			"unsupported store.backend %q (must be %q or %q)",
			c.Store.Backend, StoreBackendFile, StoreBackendMongo)
	}
	if c.Sessions.TTLHours <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"sessions.ttl_hours must be positive, got %d", c.Sessions.TTLHours)
	}
	return nil
}
