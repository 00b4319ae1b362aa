// Package render provides shared helpers for the visualization sinks.
//
// The actual sinks live in subpackages:
//   - render/html: self-contained interactive HTML artifact
//   - render/dot: Graphviz-based static SVG/PNG/PDF output
//
// This package holds the SVG→PNG/PDF conversion used by render/dot.
package render
