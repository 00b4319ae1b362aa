package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: html, svg, png, pdf, json
	title   string   // HTML page title
	noCache bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating diagram outputs.
//
// Default settings:
//   - format: html (interactive, self-contained page)
//   - output: derived from the input file name
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram config to HTML or static images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	logger.Infof("Rendering %s", input)

	cfg, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	g := runner.Build(cfg)
	logger.Debugf("Built graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	prog := newProgress(logger)
	artifacts, cached, err := runner.RenderWithCacheInfo(cmd.Context(), cfg, pipeline.Options{
		Formats: opts.formats,
		Title:   opts.title,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(artifacts)))

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(g.Nodes), len(g.Edges), cached)
	return nil
}

// outputPath derives the output file path for one format.
// Single format: use output as-is (or input with swapped extension).
// Multiple formats: output (or input stem) is a base path, extension appended.
func outputPath(output, input, format string, multi bool) string {
	ext := "." + pipeline.Extension(format)
	if !multi && output != "" {
		return output
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(base), ".")] {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + ext
}
