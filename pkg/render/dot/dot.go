// Package dot renders diagram graphs as static images via Graphviz.
//
// ToDOT emits a neato graph with pinned node positions so the concentric-ring
// geometry computed by the layout engine survives into the static output.
// Rendering uses [github.com/goccy/go-graphviz], an in-process Graphviz port,
// so SVG output needs no external binaries. PNG and PDF conversion shells out
// to rsvg-convert (see the parent render package).
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ringlet/pkg/graph"
	"github.com/matzehuels/ringlet/pkg/render"
)

// ToDOT converts a graph description to Graphviz DOT with neato layout and
// pinned positions. The resulting DOT string can be rendered with [RenderSVG],
// [RenderPNG], or [RenderPDF].
func ToDOT(g graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ringlet {\n")
	buf.WriteString("  graph [layout=neato, bgcolor=\"transparent\", outputorder=edgesfirst];\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=%q, margin=\"0.2,0.1\"];\n", graph.FontFace+" Bold")
	fmt.Fprintf(&buf, "  edge [fontname=%q, fontsize=11];\n", graph.FontFace)
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := nodeAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := edgeAttrs(e)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeAttrs builds the DOT attribute list for a node. Positions are given in
// points with a trailing "!" so neato keeps them pinned. The y coordinate is
// negated: Graphviz's y axis points up while the builder's points down.
func nodeAttrs(n graph.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("pos=\"%d,%d!\"", n.X, -n.Y),
		fmt.Sprintf("penwidth=%d", n.BorderWidth),
	}
	if n.Opacity < 1.0 {
		// Approximate reduced opacity with a light grey border and fill.
		attrs = append(attrs, "color=\"#b0b0b0\"", "fontcolor=\"#808080\"")
	}
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Arrows == graph.ArrowsNone {
		attrs = append(attrs, "arrowhead=none")
	}
	if e.Dashes {
		attrs = append(attrs, "style=dashed")
	}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
