// Package diagram defines the configuration model for two-tier circular
// diagrams: an inner cycle and an outer cycle of labeled nodes, each closed by
// a ring of directed edges, plus optional cross-links between the tiers.
//
// A Config is a pure data holder. All mutation happens by direct field
// replacement or through the edit helpers in this package; there is no hidden
// validation on write. Consumers (the layout engine and the graph builder)
// tolerate node lists shorter than three entries, edges referencing removed
// nodes, missing labels, and cross-links pointing at absent nodes.
//
// # Tiers
//
// The inner cycle carries epistemic content (knowledge, models, data, objects,
// interactions) and is traversed backward: node i connects to node i-1 mod N.
// The outer cycle carries infrastructural scaffolding (concepts, standards,
// metadata, formats, protocols) and is traversed forward: node i connects to
// node i+1 mod N. Cross-links associate an outer node with an inner node and
// are rendered outer→inner.
//
// # Lifecycle
//
// A Config is created once per editing session (usually via Default), mutated
// field by field, and optionally replaced wholesale by importing a serialized
// form with Unmarshal. Nothing is persisted unless explicitly exported.
package diagram

// Edge is a directed, optionally labeled edge between two nodes of the same
// tier. Duplicate (source, target) pairs are allowed; lookups treat the first
// match as authoritative.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label" bson:"label"`
}

// CrossLink associates an outer-tier node with an inner-tier node. It is
// undirected in meaning but stored and rendered as outer→inner. Its JSON form
// is a 2-element array ["outer","inner"]; see MarshalJSON.
type CrossLink struct {
	Outer string `bson:"outer"`
	Inner string `bson:"inner"`
}

// Config is the root configuration of a two-tier circular diagram.
//
// Config has value semantics: two configs are equal iff their fields are. The
// intended invariants (node IDs unique per tier, at least 3 nodes per ring)
// are enforced only at the edit boundary, never on direct construction or
// deserialization. IDs are only unique per tier; the same ID may appear in
// both rings.
type Config struct {
	InnerNodes  []string          `json:"inner_nodes" bson:"inner_nodes"`
	InnerLabels map[string]string `json:"inner_labels" bson:"inner_labels"`
	InnerEdges  []Edge            `json:"inner_edges" bson:"inner_edges"`

	OuterNodes  []string          `json:"outer_nodes" bson:"outer_nodes"`
	OuterLabels map[string]string `json:"outer_labels" bson:"outer_labels"`
	OuterEdges  []Edge            `json:"outer_edges" bson:"outer_edges"`

	// CrossLinks are stored as given; pairs referencing nonexistent nodes are
	// dropped at render time only.
	CrossLinks []CrossLink `json:"cross_links" bson:"cross_links"`

	ShowCrossLinks bool `json:"show_cross_links" bson:"show_cross_links"`

	// LockPositions pins nodes to their computed circle coordinates. When
	// false, nodes are free to move under the renderer's physics.
	LockPositions bool `json:"lock_positions" bson:"lock_positions"`

	InnerRadius   int `json:"inner_radius" bson:"inner_radius"`
	OuterRadius   int `json:"outer_radius" bson:"outer_radius"`
	StartAngleDeg int `json:"start_angle_deg" bson:"start_angle_deg"`

	// Physics enables the renderer's force-directed simulation. When true,
	// explicit positions are treated as initial placement only.
	Physics bool `json:"physics" bson:"physics"`
}

// Defaults for the optional configuration fields. Absent fields fall back to
// these values on import, enabling forward-compatible decoding of configs
// saved by an older schema version.
const (
	DefaultInnerRadius   = 200
	DefaultOuterRadius   = 380
	DefaultStartAngleDeg = 90
)

// Default returns the built-in session-start configuration: a 5-node inner
// cycle of epistemic relations, a 5-node outer cycle of representational
// scaffolding, and the full cartesian product of cross-links between them.
func Default() Config {
	cfg := Config{
		InnerNodes: []string{"Knowledge", "Models", "Data", "Objects", "Interactions"},
		InnerLabels: map[string]string{
			"Knowledge":    "Knowledge",
			"Models":       "Models\n(representing the world)",
			"Data":         "Data",
			"Objects":      "Objects",
			"Interactions": "Interactions\nwith the world",
		},
		InnerEdges: []Edge{
			{Source: "Models", Target: "Knowledge", Label: "Interpreted as"},
			{Source: "Data", Target: "Models", Label: "Ordered as"},
			{Source: "Objects", Target: "Data", Label: "Processed as"},
			{Source: "Interactions", Target: "Objects", Label: "Produce"},
			{Source: "Knowledge", Target: "Interactions", Label: "Informs further"},
		},
		OuterNodes: []string{"Concepts", "Standards", "Metadata", "Formats", "Protocols"},
		OuterLabels: map[string]string{
			"Concepts":  "Concepts",
			"Standards": "Schema/\nStandards",
			"Metadata":  "Metadata",
			"Formats":   "Formats",
			"Protocols": "Protocols",
		},
		OuterEdges: []Edge{
			{Source: "Concepts", Target: "Standards"},
			{Source: "Standards", Target: "Metadata"},
			{Source: "Metadata", Target: "Formats"},
			{Source: "Formats", Target: "Protocols"},
			{Source: "Protocols", Target: "Concepts"},
		},
		ShowCrossLinks: true,
		LockPositions:  true,
		InnerRadius:    DefaultInnerRadius,
		OuterRadius:    DefaultOuterRadius,
		StartAngleDeg:  DefaultStartAngleDeg,
		Physics:        false,
	}
	cfg.CrossLinks = DefaultCrossLinks(cfg)
	return cfg
}

// DefaultCrossLinks returns the full cartesian product of the config's outer
// and inner node lists, in outer-major order.
func DefaultCrossLinks(cfg Config) []CrossLink {
	links := make([]CrossLink, 0, len(cfg.OuterNodes)*len(cfg.InnerNodes))
	for _, o := range cfg.OuterNodes {
		for _, i := range cfg.InnerNodes {
			links = append(links, CrossLink{Outer: o, Inner: i})
		}
	}
	return links
}

// InnerLabel returns the display label for an inner node, falling back to the
// node ID when no label is present.
func (c *Config) InnerLabel(id string) string {
	if l, ok := c.InnerLabels[id]; ok {
		return l
	}
	return id
}

// OuterLabel returns the display label for an outer node, falling back to the
// node ID when no label is present.
func (c *Config) OuterLabel(id string) string {
	if l, ok := c.OuterLabels[id]; ok {
		return l
	}
	return id
}

// EdgeLabel looks up the label of the edge between u and v in pool. The lookup
// is symmetric: an edge stored as u→v or as v→u both match, and the first
// match wins. Missing match returns the empty string.
//
// The symmetry is intentional even though edges are stored directionally.
// Rendered output depends on it: a pool entry labels both traversal
// directions, so a stricter lookup would change what existing configs show.
func EdgeLabel(u, v string, pool []Edge) string {
	for _, e := range pool {
		if (e.Source == u && e.Target == v) || (e.Source == v && e.Target == u) {
			return e.Label
		}
	}
	return ""
}

// Clone returns a deep copy of the config. The copy shares no mutable state
// with the original, so it is safe to hand to another session or goroutine.
func (c *Config) Clone() Config {
	out := *c
	out.InnerNodes = append([]string(nil), c.InnerNodes...)
	out.OuterNodes = append([]string(nil), c.OuterNodes...)
	out.InnerEdges = append([]Edge(nil), c.InnerEdges...)
	out.OuterEdges = append([]Edge(nil), c.OuterEdges...)
	out.CrossLinks = append([]CrossLink(nil), c.CrossLinks...)
	out.InnerLabels = cloneLabels(c.InnerLabels)
	out.OuterLabels = cloneLabels(c.OuterLabels)
	return out
}

func cloneLabels(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
