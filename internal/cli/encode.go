package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/qr"
)

const defaultGridFile = "grid.json"

// encodeCommand creates the encode command for turning a payload into a module grid.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		output  string
		text    bool
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "encode [payload]",
		Short: "Encode a payload as a QR module grid",
		Long: `Encode a payload as a QR module grid.

The grid is written as grid.json: the module pattern without a quiet zone,
one string per row with '#' for dark and '.' for light modules. Use --text to
print the bare pattern instead.

Without a payload the greeting "` + qr.DefaultPayload + `" is encoded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, payloadArg(args))
			return c.runEncode(cmd.Context(), opts, output, text, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: grid.json, or stdout with --text)")
	cmd.Flags().BoolVar(&text, "text", false, "write the pattern as text")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addEncodeFlags(cmd)

	return cmd
}

// runEncode encodes the payload and writes the grid.
func (c *CLI) runEncode(ctx context.Context, opts pipeline.Options, output string, text, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, cacheHit, err := runner.EncodeWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if text {
		if output == "" {
			output = stdoutPath
		}
		return writeFile(output, []byte(g.String()))
	}

	if output == "" {
		output = defaultGridFile
	}
	if output == stdoutPath {
		data, err := grid.Marshal(g)
		if err != nil {
			return err
		}
		return writeFile(output, append(data, '\n'))
	}
	if err := grid.WriteFile(g, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Encoded payload")
	printFile(output)
	printStats(pipeline.Stats{Modules: g.Width(), Version: qr.Version(g.Width())}, cacheHit)
	printNewline()
	printNextStep("Lay out", "qrdots layout "+output)
	return nil
}
