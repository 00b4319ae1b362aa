package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ringlet/pkg/errors"
)

// =============================================================================
// CrossLink JSON Encoding
// =============================================================================

// MarshalJSON encodes a cross-link as a 2-element array ["outer","inner"].
func (l CrossLink) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{l.Outer, l.Inner})
}

// UnmarshalJSON decodes a 2-element array ["outer","inner"] into a cross-link.
func (l *CrossLink) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cross_link must be a 2-element array: %w", err)
	}
	l.Outer, l.Inner = pair[0], pair[1]
	return nil
}

// =============================================================================
// Config Serialization API
// =============================================================================

// Marshal encodes a config as pretty-printed JSON. It is total: every field is
// always emitted (including false booleans and zero radii) so that
// Unmarshal(Marshal(c)) is field-for-field equal to c.
func Marshal(cfg Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// rawConfig mirrors Config with pointer fields so absence can be told apart
// from zero values during decoding.
type rawConfig struct {
	InnerNodes  *[]string          `json:"inner_nodes"`
	InnerLabels *map[string]string `json:"inner_labels"`
	InnerEdges  *[]Edge            `json:"inner_edges"`

	OuterNodes  *[]string          `json:"outer_nodes"`
	OuterLabels *map[string]string `json:"outer_labels"`
	OuterEdges  *[]Edge            `json:"outer_edges"`

	CrossLinks     *[]CrossLink `json:"cross_links"`
	ShowCrossLinks *bool        `json:"show_cross_links"`
	LockPositions  *bool        `json:"lock_positions"`
	InnerRadius    *int         `json:"inner_radius"`
	OuterRadius    *int         `json:"outer_radius"`
	StartAngleDeg  *int         `json:"start_angle_deg"`
	Physics        *bool        `json:"physics"`
}

// Unmarshal decodes serialized config JSON.
//
// The six structural fields (inner_nodes, inner_labels, inner_edges,
// outer_nodes, outer_labels, outer_edges) are required; a missing field or
// malformed JSON yields an error with code [errors.ErrCodeParse]. The
// remaining fields are optional and fall back to documented defaults, so
// configs exported by an older schema version still import cleanly:
//
//	cross_links      → []
//	show_cross_links → true
//	lock_positions   → true
//	inner_radius     → 200
//	outer_radius     → 380
//	start_angle_deg  → 90
//	physics          → false
func Unmarshal(data []byte) (Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeParse, err, "decode config")
	}

	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"inner_nodes", raw.InnerNodes != nil},
		{"inner_labels", raw.InnerLabels != nil},
		{"inner_edges", raw.InnerEdges != nil},
		{"outer_nodes", raw.OuterNodes != nil},
		{"outer_labels", raw.OuterLabels != nil},
		{"outer_edges", raw.OuterEdges != nil},
	} {
		if !f.ok {
			return Config{}, errors.New(errors.ErrCodeParse, "missing required field %q", f.name)
		}
	}

	cfg := Config{
		InnerNodes:  *raw.InnerNodes,
		InnerLabels: *raw.InnerLabels,
		InnerEdges:  *raw.InnerEdges,
		OuterNodes:  *raw.OuterNodes,
		OuterLabels: *raw.OuterLabels,
		OuterEdges:  *raw.OuterEdges,

		CrossLinks:     []CrossLink{},
		ShowCrossLinks: true,
		LockPositions:  true,
		InnerRadius:    DefaultInnerRadius,
		OuterRadius:    DefaultOuterRadius,
		StartAngleDeg:  DefaultStartAngleDeg,
	}

	if raw.CrossLinks != nil {
		cfg.CrossLinks = *raw.CrossLinks
	}
	if raw.ShowCrossLinks != nil {
		cfg.ShowCrossLinks = *raw.ShowCrossLinks
	}
	if raw.LockPositions != nil {
		cfg.LockPositions = *raw.LockPositions
	}
	if raw.InnerRadius != nil {
		cfg.InnerRadius = *raw.InnerRadius
	}
	if raw.OuterRadius != nil {
		cfg.OuterRadius = *raw.OuterRadius
	}
	if raw.StartAngleDeg != nil {
		cfg.StartAngleDeg = *raw.StartAngleDeg
	}
	if raw.Physics != nil {
		cfg.Physics = *raw.Physics
	}

	return cfg, nil
}

// =============================================================================
// File / Stream Helpers
// =============================================================================

// Write encodes cfg as JSON to w.
func Write(cfg Config, w io.Writer) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Read decodes a config from r. It returns the same parse errors as
// [Unmarshal] for malformed input.
func Read(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Unmarshal(data)
}

// WriteFile writes cfg to a JSON file at path with 0644 permissions.
func WriteFile(cfg Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a config from a JSON file at path.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
