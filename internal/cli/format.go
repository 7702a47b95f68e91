package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// formatOpts holds the command-line flags for the format command.
type formatOpts struct {
	show    string // comma-separated section keys
	glyphs  string // glyph set name
	output  string // output file, stdout when empty
	noCache bool   // bypass the cache entirely
	refresh bool   // re-render and overwrite the cached entry
	stats   bool   // print a stats line to stderr
}

// formatCommand creates the format command.
func (c *CLI) formatCommand() *cobra.Command {
	var opts formatOpts

	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Render an explanation as text",
		Long: `Render an explanation JSON file as a plain-text report.

Sections are rendered in the order given by --show; without it every section
the explanation carries is rendered. Valid sections: method, description,
targets, feature_importances, decision_tree. An error carried by the
explanation is always printed first.`,
		Example: `  explaintext format explanation.json
  explaintext format --show targets --glyphs ascii explanation.json
  cat explanation.json | explaintext format -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.show, "show", "s", "", "sections to render (comma-separated)")
	cmd.Flags().StringVarP(&opts.glyphs, "glyphs", "g", "", "glyph set: unicode (default), ascii")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-text cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached text and re-render")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print rendering statistics to stderr")
	registerSectionFlags(cmd)

	return cmd
}

func (c *CLI) runFormat(cmd *cobra.Command, args []string, opts formatOpts) error {
	ctx := cmd.Context()
	logger := commandLogger(ctx, "format")

	data, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, data, c.pipelineOptions(showFlag(cmd, opts.show), opts.glyphs, opts.refresh))
	if err != nil {
		return err
	}
	logger.Debug("formatted", "source", source, "hash", result.Hash[:12], "cached", result.CacheHit)

	if err := writeOutput(cmd, opts.output, []byte(result.Text)); err != nil {
		return err
	}
	if opts.stats {
		printStats(result.Stats.Lines, len(result.Explanation.Targets), result.CacheHit)
		printKeyValue("hash", result.Hash[:12])
		printKeyValue("input", plural(result.Stats.InputBytes, "byte"))
		printKeyValue("decode", result.Stats.DecodeTime.Round(time.Microsecond).String())
		if !result.CacheHit {
			printKeyValue("format", result.Stats.FormatTime.Round(time.Microsecond).String())
		}
	}
	if opts.output != "" {
		prog.done("formatted", "source", source, "output", opts.output)
	}
	return nil
}
