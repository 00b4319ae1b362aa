package html

import (
	"strings"
	"testing"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/graph"
)

func TestRenderSelfContained(t *testing.T) {
	g := graph.Build(diagram.Default())

	out, err := Render(g, Options{Title: "My Diagram"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page := string(out)

	if !strings.Contains(page, "<title>My Diagram</title>") {
		t.Error("title missing")
	}

	// Graph data is embedded inline.
	for _, id := range diagram.Default().InnerNodes {
		if !strings.Contains(page, `"id": "`+id+`"`) {
			t.Errorf("inner node %q not embedded", id)
		}
	}

	// Self-contained: no external resource fetches.
	for _, marker := range []string{"<script src=", "<link rel=", "https://cdn"} {
		if strings.Contains(page, marker) {
			t.Errorf("page references external resource via %q", marker)
		}
	}
}

func TestRenderDefaultTitle(t *testing.T) {
	out, err := Render(graph.Graph{Options: graph.Options{Height: graph.DefaultHeight}}, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), "<title>Diagram</title>") {
		t.Error("default title missing")
	}
}

func TestRenderEscapesTitle(t *testing.T) {
	out, err := Render(graph.Graph{}, Options{Title: `<script>alert(1)</script>`})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "<script>alert(1)</script>") {
		t.Error("title not escaped")
	}
}

func TestRenderPhysicsFlag(t *testing.T) {
	cfg := diagram.Default()
	cfg.Physics = true

	out, err := Render(graph.Build(cfg), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), `"physics": true`) {
		t.Error("physics option not embedded in graph data")
	}
}
