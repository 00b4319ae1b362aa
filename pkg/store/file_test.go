package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

func TestFileStoreSaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg := diagram.Default()
	if err := s.Save(ctx, "inquiry", cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "inquiry")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Error("loaded config differs from saved config")
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "ghost")
	if !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("error code = %v, want DIAGRAM_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg := diagram.Default()
	if err := s.Save(ctx, "d", cfg); err != nil {
		t.Fatal(err)
	}

	cfg.ShowCrossLinks = false
	if err := s.Save(ctx, "d", cfg); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "d")
	if err != nil {
		t.Fatal(err)
	}
	if got.ShowCrossLinks {
		t.Error("overwrite did not replace the stored config")
	}
}

func TestFileStoreList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("fresh store List() = %d entries", len(entries))
	}

	for _, name := range []string{"one", "two"} {
		if err := s.Save(ctx, name, diagram.Default()); err != nil {
			t.Fatal(err)
		}
	}

	entries, err = s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() = %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Name != "one" && e.Name != "two" {
			t.Errorf("unexpected entry %q", e.Name)
		}
		if e.UpdatedAt.IsZero() {
			t.Errorf("entry %q has zero UpdatedAt", e.Name)
		}
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "d", diagram.Default()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "d"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(ctx, "d"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Error("deleted diagram still loads")
	}

	// Deleting a missing name is not an error.
	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Errorf("Delete(ghost) error = %v", err)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := []string{"", "../escape", "a/b", `a\b`, ".", ".."}
	for _, name := range bad {
		t.Run(name, func(t *testing.T) {
			err := s.Save(ctx, name, diagram.Default())
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Save(%q): code = %v, want INVALID_INPUT", name, errors.GetCode(err))
			}
		})
	}
}
