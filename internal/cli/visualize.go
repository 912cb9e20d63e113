package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render output from a computed layout",
		Long: `Render output from a computed layout.

The visualize command takes a layout.json file (produced by 'layout' or
'render -f json') and renders it to SVG, PNG, PDF or JSON. The layout
contains all positioning information, so this step only draws: the shapes
first, then the overlay image (--overlay) in the center zone.

Use 'render' as a shortcut to go directly from a payload to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, "")
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addRenderFlags(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := layout.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	l, err := layout.Parse(doc)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if meta := doc.Meta; meta != nil {
		if opts.Style == "" {
			opts.Style = meta.Style
		}
		opts.Payload, opts.Level = meta.Payload, meta.Level
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	dropUnavailablePDF(&opts)
	if len(opts.Formats) == 0 {
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %d artifact(s)", len(written))
	printWritten(written)
	printStats(pipeline.Stats{Modules: l.Columns, Shapes: len(l.Shapes)}, cacheHit)
	return nil
}
