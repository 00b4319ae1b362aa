// Package html renders diagram graphs as self-contained interactive HTML.
//
// The generated page embeds the viewer script, stylesheet, and graph data
// inline, so the artifact needs no network access at view time. It can be
// served embedded in the editor or downloaded as a standalone file.
//
// The viewer draws nodes and edges on a canvas, supports dragging unpinned
// nodes, panning and zooming, and runs a small force simulation when the
// diagram has physics enabled. Assets are embedded with go:embed.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/matzehuels/ringlet/pkg/graph"
)

// Filename is the fixed download filename for the rendered artifact.
const Filename = "diagram.html"

// ContentType is the MIME type of the rendered artifact.
const ContentType = "text/html; charset=utf-8"

//go:embed assets/viewer.js
var viewerJS string

//go:embed assets/viewer.css
var viewerCSS string

//go:embed assets/page.html.tmpl
var pageTmpl string

var page = template.Must(template.New("page").Parse(pageTmpl))

// Options configures HTML rendering.
type Options struct {
	// Title is the page title. Defaults to "Diagram".
	Title string
}

// Render produces the self-contained HTML artifact for a graph description.
// It is a total function for any graph the builder emits.
func Render(g graph.Graph, opts Options) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Diagram"
	}

	data, err := graph.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title  string
		Height string
		Graph  template.JS
		JS     template.JS
		CSS    template.CSS
	}{
		Title:  opts.Title,
		Height: g.Options.Height,
		Graph:  template.JS(data),
		JS:     template.JS(viewerJS),
		CSS:    template.CSS(viewerCSS),
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}
