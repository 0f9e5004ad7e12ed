package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output  string // output file path, stdout when empty
	mode    string // "svg" or "js", config default when empty
	js      bool   // shorthand for --mode js
	noCache bool   // bypass the cache entirely
	refresh bool   // recompute and overwrite the cached document
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a decoded movie to an animated SVG",
		Long: `Convert a decoded movie document (JSON, "-" for stdin) to a single SVG file.

By default the timeline is expressed as declarative SMIL animation. With --js the
document instead embeds the keyframe tables and a small replay script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.js {
				opts.mode = errors.ModeJS
			}
			if opts.mode == "" {
				opts.mode = c.cfg().Mode
			}
			if err := errors.ValidateMode(opts.mode); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "output mode: svg (default), js")
	cmd.Flags().BoolVar(&opts.js, "js", false, "replay the timeline with an embedded script")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached documents")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, path string, opts convertOpts) error {
	input, err := readInput(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	toFile := opts.output != "" && opts.output != "-"

	var spinner *Spinner
	if toFile {
		spinner = newSpinner(ctx, os.Stderr, fmt.Sprintf("Converting %s...", path))
		spinner.Start()
	}

	res, err := runner.Convert(ctx, input, pipeline.Options{
		Mode:    opts.mode,
		Refresh: opts.refresh,
		TTL:     c.cfg().Cache.TTL,
		Logger:  c.Logger,
	})
	if err != nil {
		if spinner != nil {
			spinner.StopWithError(errors.UserMessage(err))
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}

	if err := writeOutput(opts.output, res.Document); err != nil {
		return err
	}
	if res.Movie != nil && res.Movie.Skipped > 0 {
		c.Logger.Warn("records skipped", "count", res.Movie.Skipped)
	}
	if res.Export.FallbackFills > 0 {
		c.Logger.Warn("unsupported fills replaced", "count", res.Export.FallbackFills)
	}

	if toFile {
		printSuccess("Converted %s", path)
		printStats(res)
		printFile(opts.output)
		printNextStep("Open it in a browser or scrub the timeline", appName+" scrub "+path)
	}
	prog.done("Converted " + path)
	return nil
}
