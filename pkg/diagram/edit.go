package diagram

import (
	"strings"

	"github.com/matzehuels/ringlet/pkg/errors"
)

// MinCycleNodes is the smallest node count accepted when replacing a ring's
// node order. Smaller lists can still exist (direct construction and imports
// are not validated), but the edit boundary rejects them.
const MinCycleNodes = 3

// =============================================================================
// Node Order Updates
// =============================================================================

// SetInnerNodes replaces the inner cycle's node order. Existing labels are
// carried over for surviving nodes; new nodes default to their own ID. Fewer
// than [MinCycleNodes] names yields an INVALID_NODE_COUNT error and leaves the
// config unchanged.
func SetInnerNodes(cfg *Config, names []string) error {
	labels, err := reorder(names, cfg.InnerLabels)
	if err != nil {
		return err
	}
	cfg.InnerNodes = names
	cfg.InnerLabels = labels
	return nil
}

// SetOuterNodes replaces the outer cycle's node order, with the same label
// carry-over and validation rules as [SetInnerNodes].
func SetOuterNodes(cfg *Config, names []string) error {
	labels, err := reorder(names, cfg.OuterLabels)
	if err != nil {
		return err
	}
	cfg.OuterNodes = names
	cfg.OuterLabels = labels
	return nil
}

func reorder(names []string, old map[string]string) (map[string]string, error) {
	if len(names) < MinCycleNodes {
		return nil, errors.New(errors.ErrCodeInvalidNodeCount,
			"need at least %d nodes, got %d", MinCycleNodes, len(names))
	}
	labels := make(map[string]string, len(names))
	for _, n := range names {
		if l, ok := old[n]; ok {
			labels[n] = l
		} else {
			labels[n] = n
		}
	}
	return labels, nil
}

// =============================================================================
// Edge Label Updates
// =============================================================================

// SetInnerEdgeLabel sets the label of the directed inner edge source→target,
// updating every stored edge with that exact direction or appending a new one
// when none exists. Stale edges referencing removed nodes are left in place.
func SetInnerEdgeLabel(cfg *Config, source, target, label string) {
	cfg.InnerEdges = setEdgeLabel(cfg.InnerEdges, source, target, label)
}

// SetOuterEdgeLabel sets the label of the directed outer edge source→target,
// with the same update-or-append rule as [SetInnerEdgeLabel].
func SetOuterEdgeLabel(cfg *Config, source, target, label string) {
	cfg.OuterEdges = setEdgeLabel(cfg.OuterEdges, source, target, label)
}

func setEdgeLabel(pool []Edge, source, target, label string) []Edge {
	found := false
	for i := range pool {
		if pool[i].Source == source && pool[i].Target == target {
			pool[i].Label = label
			found = true
		}
	}
	if !found {
		pool = append(pool, Edge{Source: source, Target: target, Label: label})
	}
	return pool
}

// =============================================================================
// Cross-Link Updates
// =============================================================================

// SetCrossLinks parses text per [ParseCrossLinks] and replaces the config's
// cross-link list. Blank input resets to the full cartesian product of the
// current outer × inner nodes; non-blank input whose tokens were all skipped
// stores an empty list. On a parse error the config is unchanged.
func SetCrossLinks(cfg *Config, text string) error {
	links, err := ParseCrossLinks(text)
	if err != nil {
		return err
	}
	if links == nil {
		links = DefaultCrossLinks(*cfg)
	}
	cfg.CrossLinks = links
	return nil
}

// ParseCrossLinks parses a comma-separated list of cross-link pairs in the
// literal form "Outer→Inner" or "Outer->Inner". Whitespace around tokens and
// endpoints is trimmed. Tokens without an arrow are skipped; a pair with an
// empty endpoint is a PARSE_ERROR. Blank input returns nil, which callers
// interpret as "reset to defaults"; non-blank input returns a non-nil slice
// even when every token was skipped.
//
// Pairs may reference nodes absent from the current node lists; they are
// stored as given and only dropped when the graph is built.
func ParseCrossLinks(text string) ([]CrossLink, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	links := []CrossLink{}
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)

		var outer, inner string
		switch {
		case strings.Contains(token, "→"):
			outer, inner = splitPair(token, "→")
		case strings.Contains(token, "->"):
			outer, inner = splitPair(token, "->")
		default:
			continue
		}

		if outer == "" || inner == "" {
			return nil, errors.New(errors.ErrCodeParse, "malformed cross-link pair %q", token)
		}
		links = append(links, CrossLink{Outer: outer, Inner: inner})
	}
	return links, nil
}

func splitPair(token, arrow string) (outer, inner string) {
	parts := strings.SplitN(token, arrow, 2)
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// =============================================================================
// Free-Text Parsing
// =============================================================================

// ParseNodeList parses a comma-separated, order-significant node name list.
// Names are trimmed and empties dropped; no length validation happens here
// (that is [SetInnerNodes]' and [SetOuterNodes]' job).
func ParseNodeList(text string) []string {
	var names []string
	for _, tok := range strings.Split(text, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			names = append(names, t)
		}
	}
	return names
}
