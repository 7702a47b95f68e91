package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/format/text"
	"github.com/matzehuels/explaintext/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for explaintext.

Completions cover subcommands, section keys for --show, glyph sets and tree
formats.

  bash        source <(explaintext completion bash)
  zsh         explaintext completion zsh > "${fpath[1]}/_explaintext"
  fish        explaintext completion fish | source
  powershell  explaintext completion powershell | Out-String | Invoke-Expression`,
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
			return nil
		},
	}
}

// completeSections completes the comma-separated --show list, offering the
// section keys not yet named.
func completeSections(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done = toComplete[:i+1]
	}
	used := make(map[string]bool)
	for _, k := range parseList(done) {
		used[strings.ToLower(k)] = true
	}

	var out []string
	for _, k := range text.SectionKeys() {
		if !used[k] {
			out = append(out, done+k)
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

// registerSectionFlags adds completion for the --show and --glyphs flags of cmd.
func registerSectionFlags(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("show", completeSections)
	_ = cmd.RegisterFlagCompletionFunc("glyphs",
		cobra.FixedCompletions([]string{text.GlyphsUnicode, text.GlyphsASCII}, cobra.ShellCompDirectiveNoFileComp))
}

// registerTreeFlags adds completion for the --format flag of the tree command.
func registerTreeFlags(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{pipeline.TreeFormatText, pipeline.TreeFormatDOT, pipeline.TreeFormatSVG},
			cobra.ShellCompDirectiveNoFileComp))
}
