// Package pipeline provides the core visualization pipeline for ringlet.
//
// This package implements the build → render pipeline shared by the CLI and
// the HTTP editor. By centralizing this logic, both entry points behave
// identically: the same formats, the same defaults, and the same artifact
// caching keyed by config content.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: translate the diagram config into a render-ready graph
//  2. Render: generate output in various formats (HTML, SVG, PNG, PDF, JSON)
//
// Building is cheap and never cached; rendering can be expensive (Graphviz,
// rsvg conversion) and is cached by config hash plus render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache)
//	opts := pipeline.Options{Formats: []string{pipeline.FormatHTML}}
//	artifacts, err := runner.Render(ctx, cfg, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := artifacts[pipeline.FormatHTML]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringlet/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is the format used when none is requested.
const DefaultFormat = FormatHTML

// DefaultTitle is the page title of rendered HTML artifacts.
const DefaultTitle = "The outer cycle of empirical inquiry"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains configuration for a pipeline run.
type Options struct {
	// Formats are the output formats to render.
	Formats []string `json:"formats,omitempty"`

	// Title is the HTML page title.
	Title string `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults applies defaults for unset fields. Idempotent.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options, applying defaults first.
func (o *Options) Validate() error {
	o.SetDefaults()
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for a format, without the dot.
func Extension(format string) string {
	return format
}
