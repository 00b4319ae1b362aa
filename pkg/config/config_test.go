package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/ringlet/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
listen = ":9090"

[sessions]
backend = "redis"
ttl_hours = 48

[sessions.redis]
addr = "redis:6379"
db = 2

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://mongo:27017"
database = "ringlet"

[render]
title = "Custom title"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Sessions.Backend != SessionBackendRedis || cfg.Sessions.Redis.Addr != "redis:6379" || cfg.Sessions.Redis.DB != 2 {
		t.Errorf("Sessions = %+v", cfg.Sessions)
	}
	if got := cfg.Sessions.TTL(); got != 48*time.Hour {
		t.Errorf("TTL() = %v, want 48h", got)
	}
	if cfg.Store.Backend != StoreBackendMongo || cfg.Store.Mongo.URI != "mongodb://mongo:27017" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Render.Title != "Custom title" {
		t.Errorf("Render.Title = %q", cfg.Render.Title)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `listen = ":3000"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen != ":3000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Sessions.Backend != SessionBackendMemory {
		t.Errorf("Sessions.Backend = %q, want memory default", cfg.Sessions.Backend)
	}
	if cfg.Store.Backend != StoreBackendFile {
		t.Errorf("Store.Backend = %q, want file default", cfg.Store.Backend)
	}
	if cfg.Sessions.TTLHours != 24 {
		t.Errorf("TTLHours = %d, want 24", cfg.Sessions.TTLHours)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{
			name:    "bad toml",
			content: `listen = `,
			code:    errors.ErrCodeParse,
		},
		{
			name:    "unknown session backend",
			content: "[sessions]\nbackend = \"dynamo\"",
			code:    errors.ErrCodeUnsupported,
		},
		{
			name:    "unknown store backend",
			content: "[store]\nbackend = \"s3\"",
			code:    errors.ErrCodeUnsupported,
		},
		{
			name:    "non-positive ttl",
			content: "[sessions]\nttl_hours = 0",
			code:    errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}
