package cli

import (
	"github.com/spf13/cobra"

	"github.com/hotelzululima/flashback/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string
	dot      bool // emit DOT source instead of SVG
	detailed bool // add kind and metadata lines to node labels
	noCache  bool
}

// graphCommand creates the character graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render which characters reference which",
		Long: `Render the character reference graph of a movie: the movie and every sprite
point at the characters they place, and shapes point at the bitmaps they fill
with. Characters that are referenced but never defined are drawn in red.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			format := "svg"
			if opts.dot {
				format = "dot"
			}
			data, err := runner.Graph(ctx, input, pipeline.GraphOptions{
				Format:   format,
				Detailed: opts.detailed,
				Logger:   c.Logger,
			})
			if err != nil {
				return err
			}
			if err := writeOutput(opts.output, data); err != nil {
				return err
			}
			if opts.output != "" && opts.output != "-" {
				printSuccess("Rendered character graph")
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "emit Graphviz DOT source")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show kinds and metadata in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")

	return cmd
}
