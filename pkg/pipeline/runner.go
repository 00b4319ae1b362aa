package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ringlet/pkg/cache"
	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/graph"
	"github.com/matzehuels/ringlet/pkg/render/dot"
	"github.com/matzehuels/ringlet/pkg/render/html"
)

// artifactTTL bounds how long rendered artifacts stay cached. Rendering is
// deterministic, so the TTL only limits disk growth.
const artifactTTL = 7 * 24 * time.Hour

// Runner executes the build → render pipeline with artifact caching.
type Runner struct {
	cache cache.Cache
}

// NewRunner creates a pipeline runner. A nil cache disables caching.
func NewRunner(c cache.Cache) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{cache: c}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Build translates the config into a render-ready graph description.
// It is exposed separately so callers can inspect or dump the graph.
func (r *Runner) Build(cfg diagram.Config) graph.Graph {
	return graph.Build(cfg)
}

// Render builds the graph and renders every requested format, returning
// artifacts keyed by format. Cached artifacts are reused when the config and
// options match a previous run.
func (r *Runner) Render(ctx context.Context, cfg diagram.Config, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, cfg, opts)
	return artifacts, err
}

// RenderWithCacheInfo is [Render] plus a flag reporting whether every artifact
// came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cfg diagram.Config, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	logger := opts.Logger

	encoded, err := diagram.Marshal(cfg)
	if err != nil {
		return nil, false, err
	}
	configHash := cache.Hash(encoded)

	g := graph.Build(cfg)
	logger.Debugf("Built graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		key := cache.ArtifactKey(configHash, cache.ArtifactKeyOpts{Format: format, Title: opts.Title})

		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			logger.Debugf("Cache hit for %s artifact", format)
			artifacts[format] = data
			continue
		}
		allHit = false

		start := time.Now()
		data, err := r.renderFormat(g, format, opts)
		if err != nil {
			return nil, false, err
		}
		logger.Debugf("Rendered %s: %d bytes (%s)", format, len(data), time.Since(start).Round(time.Millisecond))

		if err := r.cache.Set(ctx, key, data, artifactTTL); err != nil {
			logger.Warnf("Cache write failed for %s: %v", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, allHit, nil
}

// renderFormat dispatches to the sink for a single format.
func (r *Runner) renderFormat(g graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return html.Render(g, html.Options{Title: opts.Title})
	case FormatSVG:
		return dot.RenderSVG(dot.ToDOT(g))
	case FormatPNG:
		return dot.RenderPNG(dot.ToDOT(g), 2.0)
	case FormatPDF:
		return dot.RenderPDF(dot.ToDOT(g))
	case FormatJSON:
		return graph.Marshal(g)
	default:
		return nil, ValidateFormat(format)
	}
}
