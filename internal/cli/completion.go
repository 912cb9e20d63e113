package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for qrdots.

Bash:
  $ source <(qrdots completion bash)

Zsh:
  $ qrdots completion zsh > "${fpath[1]}/_qrdots"

Fish:
  $ qrdots completion fish > ~/.config/fish/completions/qrdots.fish

PowerShell:
  PS> qrdots completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}

	return cmd
}

// completeFormats offers the output formats for --format.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"svg", "png", "pdf", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// completeStyles offers the visual styles for --style.
func completeStyles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return styles.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeLevels offers the recovery levels for --level.
func completeLevels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"low", "medium", "high", "highest"}, cobra.ShellCompDirectiveNoFileComp
}
