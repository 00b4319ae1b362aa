// Package store persists named diagram configurations.
//
// Unlike sessions (which hold the live, unsaved editing state), the store
// keeps diagrams a user explicitly saved under a name. Two backends:
//   - file: JSON files under a directory, the CLI default
//     (~/.config/ringlet/diagrams)
//   - mongo: MongoDB collection for server deployments
//
// Names are free-form but must be non-empty; the file backend additionally
// rejects path separators.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
)

// Entry describes one saved diagram.
type Entry struct {
	Name      string    `json:"name" bson:"name"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for diagram persistence backends.
type Store interface {
	// Save stores a config under a name, overwriting any previous version.
	Save(ctx context.Context, name string, cfg diagram.Config) error

	// Load retrieves a config by name. Returns a DIAGRAM_NOT_FOUND error
	// when no diagram with that name exists.
	Load(ctx context.Context, name string) (diagram.Config, error)

	// List returns all saved entries, most recently updated first.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes a saved diagram. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// NotFound builds the canonical missing-diagram error.
func NotFound(name string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "no saved diagram named %q", name)
}

// ValidateName rejects empty names. Backends may impose further rules.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram name must not be empty")
	}
	return nil
}
