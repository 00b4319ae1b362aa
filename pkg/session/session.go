// Package session provides editing-session management for the diagram editor.
//
// A session owns the single active diagram configuration for one browser. The
// config is created at session start (the built-in default), mutated
// field-by-field through the editing surface, optionally replaced wholesale by
// an import, and discarded when the session expires. Nothing is persisted
// beyond explicit export.
//
// Two store backends are provided:
//   - memory: in-process storage for single-instance deployments and tests
//   - redis: Redis-backed storage for multi-instance deployments
//
// Session IDs are UUIDs and travel in a cookie; see the server package.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ringlet/pkg/diagram"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session is one editing session and its exclusively-owned config.
type Session struct {
	ID        string         `json:"id"`
	Config    diagram.Config `json:"config"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Replace swaps in an imported config wholesale. The previous config is
// discarded; callers must have validated the import first so a failed parse
// never mutates state.
func (s *Session) Replace(cfg diagram.Config) {
	s.Config = cfg
}

// New creates a session owning the built-in default config.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Config:    diagram.Default(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for Redis, which
	// expires keys itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
