package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/graph"
)

func TestToDOTStructure(t *testing.T) {
	g := graph.Build(diagram.Default())
	dot := ToDOT(g)

	if !strings.HasPrefix(dot, "digraph ringlet {") {
		t.Error("DOT should open a digraph")
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("DOT should request neato layout")
	}

	// Every node appears with a pinned position.
	for _, n := range g.Nodes {
		if !strings.Contains(dot, `"`+n.ID+`" [`) {
			t.Errorf("node %q missing", n.ID)
		}
	}
	if !strings.Contains(dot, "!\"") {
		t.Error("positions should be pinned with a trailing '!'")
	}
}

func TestToDOTNegatesY(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "top", Label: "top", X: 0, Y: 200, BorderWidth: 2, Opacity: 1}},
	}
	dot := ToDOT(g)

	// Graphviz's y axis points up, the builder's points down.
	if !strings.Contains(dot, `pos="0,-200!"`) {
		t.Errorf("y coordinate not negated:\n%s", dot)
	}
}

func TestToDOTEdgeStyling(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Label: "a", Opacity: 1, BorderWidth: 1},
			{ID: "b", Label: "b", Opacity: 1, BorderWidth: 1},
		},
		Edges: []graph.Edge{
			{From: "a", To: "b", Label: "named", Arrows: graph.ArrowsTo},
			{From: "b", To: "a", Arrows: graph.ArrowsNone},
			{From: "a", To: "b", Arrows: graph.ArrowsTo, Dashes: true, Color: graph.CrossLinkColor},
		},
	}
	dot := ToDOT(g)

	if !strings.Contains(dot, `label="named"`) {
		t.Error("edge label missing")
	}
	if !strings.Contains(dot, "arrowhead=none") {
		t.Error("undirected edge should suppress the arrowhead")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("cross-link should be dashed")
	}
	if !strings.Contains(dot, `color="gray"`) {
		t.Error("cross-link should be gray")
	}
}

func TestToDOTOuterTierMuted(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "outer", Label: "outer", Opacity: graph.OuterOpacity, BorderWidth: graph.OuterBorderWidth},
			{ID: "inner", Label: "inner", Opacity: graph.InnerOpacity, BorderWidth: graph.InnerBorderWidth},
		},
	}
	dot := ToDOT(g)

	lines := strings.Split(dot, "\n")
	var outerLine, innerLine string
	for _, l := range lines {
		if strings.Contains(l, `"outer" [`) {
			outerLine = l
		}
		if strings.Contains(l, `"inner" [`) {
			innerLine = l
		}
	}

	if !strings.Contains(outerLine, "penwidth=1") || !strings.Contains(outerLine, "#b0b0b0") {
		t.Errorf("outer node not muted: %s", outerLine)
	}
	if !strings.Contains(innerLine, "penwidth=2") || strings.Contains(innerLine, "#b0b0b0") {
		t.Errorf("inner node should be full strength: %s", innerLine)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.50 50.25" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.50 50.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101"`) && !strings.Contains(out, `width="100"`) {
		t.Errorf("width not rewritten in pixels: %s", out)
	}

	// SVG without a viewBox passes through unchanged.
	plain := []byte(`<svg>`)
	if got := normalizeViewBox(plain); string(got) != `<svg>` {
		t.Errorf("plain svg changed: %s", got)
	}
}
