package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/ringlet/pkg/cache"
	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
	"github.com/matzehuels/ringlet/pkg/graph"
)

func TestRunnerBuild(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	g := r.Build(diagram.Default())
	if len(g.Nodes) != 10 {
		t.Errorf("len(Nodes) = %d, want 10", len(g.Nodes))
	}
}

func TestRunnerRenderJSONAndHTML(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	artifacts, err := r.Render(context.Background(), diagram.Default(), Options{
		Formats: []string{FormatJSON, FormatHTML},
		Title:   "Test",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(artifacts))
	}

	g, err := graph.Unmarshal(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact does not parse: %v", err)
	}
	if len(g.Nodes) != 10 {
		t.Errorf("json artifact nodes = %d, want 10", len(g.Nodes))
	}

	if !strings.Contains(string(artifacts[FormatHTML]), "<title>Test</title>") {
		t.Error("html artifact missing title")
	}
}

func TestRunnerRejectsInvalidFormat(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	_, err := r.Render(context.Background(), diagram.Default(), Options{
		Formats: []string{"gif"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestRunnerCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c)
	defer r.Close()

	ctx := context.Background()
	cfg := diagram.Default()
	opts := Options{Formats: []string{FormatJSON}}

	first, hit, err := r.RenderWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("first render error = %v", err)
	}
	if hit {
		t.Error("first render should not be a full cache hit")
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("second render error = %v", err)
	}
	if !hit {
		t.Error("second render should come from cache")
	}
	if string(first[FormatJSON]) != string(second[FormatJSON]) {
		t.Error("cached artifact differs from fresh one")
	}

	// A different config misses the cache.
	cfg.ShowCrossLinks = false
	_, hit, err = r.RenderWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("changed config should not hit the cache")
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", opts.Title, DefaultTitle)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateFormat(t *testing.T) {
	for f := range ValidFormats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	if err := ValidateFormat("docx"); err == nil {
		t.Error("ValidateFormat(docx) should fail")
	}
}
