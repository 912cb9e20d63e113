package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/qr"
)

// layoutCommand creates the layout command for computing shape layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "layout [grid.json]",
		Short: "Compute the shape layout of a module grid",
		Long: `Compute the shape layout of a module grid.

The layout command takes a grid.json file (produced by 'encode') and maps it
to shapes: a background plate, circles for data modules and squares for the
three finder corners, leaving the center zone empty. The output is a
layout.json file (same format as 'render -f json') that can be rendered with
the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, "")
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addLayoutFlags(cmd)

	return cmd
}

// runLayout loads the grid, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := grid.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load grid %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := layout.WriteDocumentFile(l.Export(), outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(pipeline.Stats{Modules: g.Width(), Version: qr.Version(g.Width()), Shapes: len(l.Shapes)}, cacheHit)
	printNewline()
	printNextStep("Render", "qrdots visualize "+outputPath)

	return nil
}
