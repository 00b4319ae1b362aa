package graph

import "encoding/json"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node shape used for both tiers.
const ShapeBox = "box"

// Arrow settings for edges.
const (
	ArrowsTo   = "to" // arrowhead at the target
	ArrowsNone = ""   // undirected-looking edge
)

// FontFace is the display font for node labels.
const FontFace = "Times New Roman"

// CrossLinkColor is the muted color used for cross-link edges.
const CrossLinkColor = "gray"

// Styling for the two tiers. The outer ring reads as background scaffolding,
// the inner ring as foreground content.
const (
	OuterBorderWidth = 1
	OuterOpacity     = 0.35
	InnerBorderWidth = 2
	InnerOpacity     = 1.0
)

// DefaultHeight is the viewport height of rendered artifacts.
const DefaultHeight = "760px"

// =============================================================================
// Graph - Render-Ready Description
// =============================================================================

// Graph is a renderer-agnostic bag of positioned, styled nodes and edges,
// ready for a visualization sink. It is the single wire format between the
// builder and the HTML and Graphviz sinks, and is JSON-serializable for API
// responses and debugging dumps.
type Graph struct {
	Nodes   []Node  `json:"nodes" bson:"nodes"`
	Edges   []Edge  `json:"edges" bson:"edges"`
	Options Options `json:"options" bson:"options"`
}

// Node is a positioned, styled diagram node.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"` // display text, defaults to ID
	X     int    `json:"x" bson:"x"`
	Y     int    `json:"y" bson:"y"`

	Shape       string  `json:"shape" bson:"shape"`
	BorderWidth int     `json:"border_width" bson:"border_width"`
	Opacity     float64 `json:"opacity" bson:"opacity"`

	// Fixed pins the node at (X, Y). When false the node is free to move
	// under the renderer's physics.
	Fixed bool `json:"fixed" bson:"fixed"`

	Font Font `json:"font" bson:"font"`
}

// Font describes node label typography.
type Font struct {
	Face string `json:"face" bson:"face"`
	Bold bool   `json:"bold" bson:"bold"`
}

// Edge is a styled connection between two nodes.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`

	Arrows string `json:"arrows" bson:"arrows"` // ArrowsTo or ArrowsNone
	Dashes bool   `json:"dashes,omitempty" bson:"dashes,omitempty"`
	Color  string `json:"color,omitempty" bson:"color,omitempty"`
	Smooth bool   `json:"smooth" bson:"smooth"`
}

// Options carries renderer-level settings.
type Options struct {
	Directed bool   `json:"directed" bson:"directed"`
	Physics  bool   `json:"physics" bson:"physics"`
	Height   string `json:"height" bson:"height"`
}

// IsCrossLink reports whether the edge is a cross-link between tiers.
// Cross-links are the only dashed edges a builder emits.
func (e *Edge) IsCrossLink() bool { return e.Dashes }

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a Graph to pretty-printed JSON bytes.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Unmarshal deserializes JSON bytes to a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
