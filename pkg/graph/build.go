// Package graph builds render-ready graph descriptions from diagram configs.
//
// The builder reads a [diagram.Config], invokes the circle layout for both
// tiers, and emits a [Graph] that the HTML and Graphviz sinks can render
// without knowing anything about diagrams. Building is cheap and stateless;
// every edit triggers a full rebuild.
//
// # Tolerance policy
//
// The builder never fails. It tolerates whatever the config holds:
//
//   - ring edges whose endpoints no longer exist are ignored, never deleted
//   - cross-links with a missing endpoint are skipped at build time only
//   - missing labels fall back to the node ID
//   - an empty ring emits no nodes or edges; a 1-node ring wraps to itself
package graph

import (
	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/layout"
)

// Build translates a diagram config into a render-ready graph description.
//
// Outer nodes are emitted first (background), then inner nodes (foreground).
// The outer ring is traversed forward (node i connects to node i+1 mod N) with
// undirected-looking edges; the inner ring is traversed backward (node i to
// node i-1 mod N) with directed edges. Edge labels come from the config's edge
// pools via symmetric lookup. Cross-link edges appear only when
// ShowCrossLinks is set and both endpoints exist in the current node lists.
func Build(cfg diagram.Config) Graph {
	g := Graph{
		Nodes: []Node{},
		Edges: []Edge{},
		Options: Options{
			Directed: true,
			Physics:  cfg.Physics,
			Height:   DefaultHeight,
		},
	}

	innerPos := layout.CirclePositions(cfg.InnerNodes, cfg.InnerRadius, true, cfg.StartAngleDeg)
	outerPos := layout.CirclePositions(cfg.OuterNodes, cfg.OuterRadius, true, cfg.StartAngleDeg)

	for _, id := range cfg.OuterNodes {
		p := outerPos[id]
		g.Nodes = append(g.Nodes, Node{
			ID:          id,
			Label:       cfg.OuterLabel(id),
			X:           p.X,
			Y:           p.Y,
			Shape:       ShapeBox,
			BorderWidth: OuterBorderWidth,
			Opacity:     OuterOpacity,
			Fixed:       cfg.LockPositions,
			Font:        Font{Face: FontFace, Bold: true},
		})
	}

	for _, id := range cfg.InnerNodes {
		p := innerPos[id]
		g.Nodes = append(g.Nodes, Node{
			ID:          id,
			Label:       cfg.InnerLabel(id),
			X:           p.X,
			Y:           p.Y,
			Shape:       ShapeBox,
			BorderWidth: InnerBorderWidth,
			Opacity:     InnerOpacity,
			Fixed:       cfg.LockPositions,
			Font:        Font{Face: FontFace, Bold: true},
		})
	}

	// Outer ring: forward traversal, no arrowheads.
	for i, u := range cfg.OuterNodes {
		v := cfg.OuterNodes[(i+1)%len(cfg.OuterNodes)]
		g.Edges = append(g.Edges, Edge{
			From:   u,
			To:     v,
			Label:  diagram.EdgeLabel(u, v, cfg.OuterEdges),
			Arrows: ArrowsNone,
			Smooth: true,
		})
	}

	// Inner ring: backward traversal (node i+1 connects to node i),
	// arrowheads at the target.
	for i, v := range cfg.InnerNodes {
		u := cfg.InnerNodes[(i+1)%len(cfg.InnerNodes)]
		g.Edges = append(g.Edges, Edge{
			From:   u,
			To:     v,
			Label:  diagram.EdgeLabel(u, v, cfg.InnerEdges),
			Arrows: ArrowsTo,
			Smooth: true,
		})
	}

	if cfg.ShowCrossLinks {
		outer := nodeSet(cfg.OuterNodes)
		inner := nodeSet(cfg.InnerNodes)
		for _, l := range cfg.CrossLinks {
			if !outer[l.Outer] || !inner[l.Inner] {
				continue // dangling pair, tolerated in storage
			}
			g.Edges = append(g.Edges, Edge{
				From:   l.Outer,
				To:     l.Inner,
				Arrows: ArrowsTo,
				Dashes: true,
				Color:  CrossLinkColor,
				Smooth: true,
			})
		}
	}

	return g
}

func nodeSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
