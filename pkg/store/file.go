package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
)

// FileStore persists diagrams as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based diagram store.
// If baseDir is empty, defaults to ~/.config/ringlet/diagrams/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "ringlet", "diagrams")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create diagram dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func validateFileName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.New(errors.ErrCodeInvalidInput, "diagram name %q must not contain path separators", name)
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, name string, cfg diagram.Config) error {
	if err := validateFileName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return diagram.WriteFile(cfg, s.path(name))
}

func (s *FileStore) Load(ctx context.Context, name string) (diagram.Config, error) {
	if err := validateFileName(name); err != nil {
		return diagram.Config{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := os.Stat(s.path(name)); os.IsNotExist(err) {
		return diagram.Config{}, NotFound(name)
	}
	return diagram.ReadFile(s.path(name))
}

func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read diagram dir: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      strings.TrimSuffix(f.Name(), ".json"),
			UpdatedAt: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := validateFileName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove diagram: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Dir returns the base directory for diagram files.
func (s *FileStore) Dir() string { return s.baseDir }

var _ Store = (*FileStore)(nil)
