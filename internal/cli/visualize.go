package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or scene JSON. The layout carries the arcs,
ribbons and labels, so this step is purely about drawing.

Style, seed and frame size default to the values stored in the layout.

Use 'render' as a shortcut to go directly from words to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: gradient, simple, handdrawn (default: from layout)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for the handdrawn style (default: from layout)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached artifacts exist")
	addRenderFlags(cmd.Flags(), &opts, &formatsStr)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	// The layout's own settings win over the config file.
	if opts.Style == "" {
		opts.Style = l.Style
	}
	if opts.Seed == 0 {
		opts.Seed = l.Seed
	}
	opts.Width, opts.Height = l.Width, l.Height
	opts.Engine = l.Engine
	opts.VizType = l.VizType
	opts = c.options(opts)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", l.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	p := newProgress(c.Logger)
	paths, err := writeArtifacts(artifacts, formatsOrDefault(opts.Formats), input, output)
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}
	p.done(fmt.Sprintf("Wrote %d artifacts", len(paths)))

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(l.NodeCount, 0, len(l.Ribbons), cacheHit)
	printBands(l)
	return nil
}
