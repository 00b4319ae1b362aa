package diagram

import "testing"

func TestDefaultShape(t *testing.T) {
	cfg := Default()

	if got := len(cfg.InnerNodes); got != 5 {
		t.Errorf("len(InnerNodes) = %d, want 5", got)
	}
	if got := len(cfg.OuterNodes); got != 5 {
		t.Errorf("len(OuterNodes) = %d, want 5", got)
	}
	if got := len(cfg.InnerEdges); got != 5 {
		t.Errorf("len(InnerEdges) = %d, want 5", got)
	}
	if got := len(cfg.OuterEdges); got != 5 {
		t.Errorf("len(OuterEdges) = %d, want 5", got)
	}
	if got := len(cfg.CrossLinks); got != 25 {
		t.Errorf("len(CrossLinks) = %d, want 25 (full cartesian product)", got)
	}

	if !cfg.ShowCrossLinks {
		t.Error("ShowCrossLinks should default to true")
	}
	if !cfg.LockPositions {
		t.Error("LockPositions should default to true")
	}
	if cfg.Physics {
		t.Error("Physics should default to false")
	}
	if cfg.InnerRadius != 200 || cfg.OuterRadius != 380 || cfg.StartAngleDeg != 90 {
		t.Errorf("radii/angle = %d/%d/%d, want 200/380/90",
			cfg.InnerRadius, cfg.OuterRadius, cfg.StartAngleDeg)
	}

	// Every outer edge in the default set is unlabeled.
	for _, e := range cfg.OuterEdges {
		if e.Label != "" {
			t.Errorf("outer edge %s→%s has label %q, want none", e.Source, e.Target, e.Label)
		}
	}
}

func TestDefaultCrossLinksOrder(t *testing.T) {
	cfg := Default()
	links := DefaultCrossLinks(cfg)

	// Outer-major order: all pairs for the first outer node come first.
	for i := 0; i < len(cfg.InnerNodes); i++ {
		if links[i].Outer != cfg.OuterNodes[0] {
			t.Fatalf("links[%d].Outer = %q, want %q", i, links[i].Outer, cfg.OuterNodes[0])
		}
		if links[i].Inner != cfg.InnerNodes[i] {
			t.Fatalf("links[%d].Inner = %q, want %q", i, links[i].Inner, cfg.InnerNodes[i])
		}
	}
}

func TestLabelFallback(t *testing.T) {
	cfg := Config{
		InnerLabels: map[string]string{"Data": "All the data"},
	}

	if got := cfg.InnerLabel("Data"); got != "All the data" {
		t.Errorf("InnerLabel(Data) = %q", got)
	}
	if got := cfg.InnerLabel("Unknown"); got != "Unknown" {
		t.Errorf("InnerLabel(Unknown) = %q, want the ID itself", got)
	}
	if got := cfg.OuterLabel("Anything"); got != "Anything" {
		t.Errorf("OuterLabel on nil map = %q, want the ID itself", got)
	}
}

func TestEdgeLabelSymmetricLookup(t *testing.T) {
	pool := []Edge{
		{Source: "A", Target: "B", Label: "forward"},
		{Source: "C", Target: "D", Label: "first"},
		{Source: "D", Target: "C", Label: "second"},
	}

	tests := []struct {
		name string
		u, v string
		want string
	}{
		{"exact direction", "A", "B", "forward"},
		{"reversed direction matches too", "B", "A", "forward"},
		{"first match wins over later reverse", "C", "D", "first"},
		{"first match wins queried backward", "D", "C", "first"},
		{"no match", "A", "C", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgeLabel(tt.u, tt.v, pool); got != tt.want {
				t.Errorf("EdgeLabel(%q, %q) = %q, want %q", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := Default()
	clone := orig.Clone()

	clone.InnerNodes[0] = "Mutated"
	clone.InnerLabels["Knowledge"] = "Mutated"
	clone.InnerEdges[0].Label = "Mutated"
	clone.CrossLinks[0].Outer = "Mutated"

	if orig.InnerNodes[0] == "Mutated" {
		t.Error("Clone shares InnerNodes backing array")
	}
	if orig.InnerLabels["Knowledge"] == "Mutated" {
		t.Error("Clone shares InnerLabels map")
	}
	if orig.InnerEdges[0].Label == "Mutated" {
		t.Error("Clone shares InnerEdges backing array")
	}
	if orig.CrossLinks[0].Outer == "Mutated" {
		t.Error("Clone shares CrossLinks backing array")
	}
}
