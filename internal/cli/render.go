package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/pipeline"
)

// renderCommand creates the render command: encode, layout and render in one go.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a payload as a dotted QR code",
		Long: `Render a payload as a dotted QR code.

This runs the complete pipeline: encode the payload, lay the modules out as
circles with square finder corners, and render the requested formats. An
image given with --overlay is fitted into the empty center zone.

Examples:
  qrdots render "https://example.com" --overlay face.png
  qrdots render "hello" -f svg,png --style rounded --fg "#1e3a5f"
  qrdots render "hello" -f png -o - > qr.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, payloadArg(args))
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (default: qr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addEncodeFlags(cmd)
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	dropUnavailablePDF(&opts)
	if len(opts.Formats) == 0 {
		return nil
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger, "render")
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("pipeline complete", "formats", opts.Formats)

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    output,
	})
	if err != nil {
		return err
	}

	if output == stdoutPath {
		return nil
	}
	printSuccess("Rendered %d artifact(s)", len(written))
	printWritten(written)
	printStats(result.Stats, result.CacheInfo.RenderHit)
	if opts.HasOverlay() {
		printDetail("Overlay: %s", opts.Overlay)
	}
	return nil
}
