package server

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed assets/editor.html.tmpl
var editorTemplate string

var editorPage = template.Must(template.New("editor").Parse(editorTemplate))

// handleEditor serves the editing UI. All state lives server-side in the
// session; the page only mirrors it and posts edits to the API.
func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	title := s.cfg.Render.Title
	if title == "" {
		title = "ringlet"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := editorPage.Execute(w, struct{ Title string }{Title: title}); err != nil {
		s.logger.Warnf("Render editor page failed: %v", err)
	}
}
