package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
	"github.com/matzehuels/ringlet/pkg/pipeline"
	"github.com/matzehuels/ringlet/pkg/render/html"
	"github.com/matzehuels/ringlet/pkg/session"
)

// maxImportSize bounds config imports.
const maxImportSize = 1 << 20

// =============================================================================
// Diagram State
// =============================================================================

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.writeJSON(w, http.StatusOK, sess.Config)
}

// handleImportDiagram replaces the session's config wholesale. A failed parse
// leaves the current config untouched.
func (s *Server) handleImportDiagram(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "read request body"))
		return
	}

	cfg, err := diagram.Unmarshal(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mutate(w, r, func(sess *session.Session) error {
		sess.Replace(cfg)
		return nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error {
		sess.Replace(diagram.Default())
		return nil
	})
}

// =============================================================================
// Editing Operations
// =============================================================================

// nodesRequest accepts either an explicit list or free text to parse.
type nodesRequest struct {
	Nodes []string `json:"nodes,omitempty"`
	Text  string   `json:"text,omitempty"`
}

func (s *Server) handleSetNodes(inner bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nodesRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		names := req.Nodes
		if len(names) == 0 {
			names = diagram.ParseNodeList(req.Text)
		}

		s.mutate(w, r, func(sess *session.Session) error {
			if inner {
				return diagram.SetInnerNodes(&sess.Config, names)
			}
			return diagram.SetOuterNodes(&sess.Config, names)
		})
	}
}

type labelRequest struct {
	Node  string `json:"node"`
	Label string `json:"label"`
}

func (s *Server) handleSetLabel(inner bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req labelRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		if req.Node == "" {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "node must not be empty"))
			return
		}

		s.mutate(w, r, func(sess *session.Session) error {
			labels := sess.Config.InnerLabels
			if !inner {
				labels = sess.Config.OuterLabels
			}
			if labels == nil {
				labels = make(map[string]string)
				if inner {
					sess.Config.InnerLabels = labels
				} else {
					sess.Config.OuterLabels = labels
				}
			}
			labels[req.Node] = req.Label
			return nil
		})
	}
}

type edgeLabelRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

func (s *Server) handleSetEdgeLabel(inner bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req edgeLabelRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		if req.Source == "" || req.Target == "" {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "source and target must not be empty"))
			return
		}

		s.mutate(w, r, func(sess *session.Session) error {
			if inner {
				diagram.SetInnerEdgeLabel(&sess.Config, req.Source, req.Target, req.Label)
			} else {
				diagram.SetOuterEdgeLabel(&sess.Config, req.Source, req.Target, req.Label)
			}
			return nil
		})
	}
}

type crossLinksRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSetCrossLinks(w http.ResponseWriter, r *http.Request) {
	var req crossLinksRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mutate(w, r, func(sess *session.Session) error {
		return diagram.SetCrossLinks(&sess.Config, req.Text)
	})
}

// optionsRequest updates display options. Pointer fields distinguish "leave
// unchanged" from explicit values.
type optionsRequest struct {
	ShowCrossLinks *bool `json:"show_cross_links,omitempty"`
	LockPositions  *bool `json:"lock_positions,omitempty"`
	Physics        *bool `json:"physics,omitempty"`
	InnerRadius    *int  `json:"inner_radius,omitempty"`
	OuterRadius    *int  `json:"outer_radius,omitempty"`
	StartAngleDeg  *int  `json:"start_angle_deg,omitempty"`
}

func (s *Server) handleSetOptions(w http.ResponseWriter, r *http.Request) {
	var req optionsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.InnerRadius != nil && *req.InnerRadius <= 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "inner_radius must be positive"))
		return
	}
	if req.OuterRadius != nil && *req.OuterRadius <= 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "outer_radius must be positive"))
		return
	}

	s.mutate(w, r, func(sess *session.Session) error {
		cfg := &sess.Config
		if req.ShowCrossLinks != nil {
			cfg.ShowCrossLinks = *req.ShowCrossLinks
		}
		if req.LockPositions != nil {
			cfg.LockPositions = *req.LockPositions
		}
		if req.Physics != nil {
			cfg.Physics = *req.Physics
		}
		if req.InnerRadius != nil {
			cfg.InnerRadius = *req.InnerRadius
		}
		if req.OuterRadius != nil {
			cfg.OuterRadius = *req.OuterRadius
		}
		if req.StartAngleDeg != nil {
			cfg.StartAngleDeg = *req.StartAngleDeg
		}
		return nil
	})
}

// mutate applies fn to the request's session and persists it on success. A
// failed fn leaves the stored session untouched and is written as the
// response; a successful one responds with the updated config.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess := sessionFrom(r.Context())
	if err := fn(sess); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Config)
}

// =============================================================================
// Exports & Rendering
// =============================================================================

// exportFilename is the download name for config exports.
const exportFilename = "diagram_config.json"

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	data, err := diagram.Marshal(sess.Config)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	_, _ = w.Write(data)
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatHTML, html.ContentType,
		fmt.Sprintf("attachment; filename=%q", html.Filename))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatHTML, html.ContentType, "")
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml", "")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType, disposition string) {
	sess := sessionFrom(r.Context())

	title := s.cfg.Render.Title
	if title == "" {
		title = pipeline.DefaultTitle
	}

	artifacts, err := s.runner.Render(r.Context(), sess.Config, pipeline.Options{
		Formats: []string{format},
		Title:   title,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Saved Diagram Collection
// =============================================================================

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	entries, err := s.diagrams.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"diagrams": entries})
}

// handleSaveDiagram stores the session's current config under a name.
func (s *Server) handleSaveDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sess := sessionFrom(r.Context())

	if err := s.diagrams.Save(r.Context(), name, sess.Config); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Infof("Saved diagram %q", name)
	s.writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// handleLoadDiagram replaces the session's config with a saved diagram.
func (s *Server) handleLoadDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	cfg, err := s.diagrams.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mutate(w, r, func(sess *session.Session) error {
		sess.Replace(cfg)
		return nil
	})
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.diagrams.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
