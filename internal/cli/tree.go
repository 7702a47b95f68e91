package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	format  string // text, dot or svg
	output  string // output file, stdout when empty
	noCache bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: pipeline.TreeFormatText}

	cmd := &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Render the decision tree of an explanation",
		Long: `Render only the decision tree carried by an explanation.

Formats:
  text  indented branches, as in the decision_tree section of format
  dot   Graphviz source
  svg   rendered with the embedded Graphviz`,
		Example: `  explaintext tree explanation.json
  explaintext tree --format svg -o tree.svg explanation.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTreeFormat(opts.format); err != nil {
				return err
			}
			return c.runTree(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the SVG cache")
	registerTreeFlags(cmd)

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, args []string, opts treeOpts) error {
	ctx := cmd.Context()

	data, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var sp *spinner
	if opts.format == pipeline.TreeFormatSVG {
		sp = newSpinner(ctx, "Rendering decision tree...")
		sp.Start()
	}
	out, err := runner.RenderTree(ctx, data, opts.format)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd, opts.output, out)
}
