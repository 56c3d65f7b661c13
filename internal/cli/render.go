package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and visualize
// in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [words]",
		Short: "Render a word dataset to SVG, PNG, PDF or scene JSON",
		Long: `Render a word dataset to SVG, PNG, PDF or scene JSON.

This is equivalent to running 'layout' followed by 'visualize'. Both stages
are cached, so re-rendering the same words with a different palette only
repeats the drawing step.

Use "-o -" with a single format to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], c.options(opts), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd.Flags(), &opts)
	addRenderFlags(cmd.Flags(), &opts, &formatsStr)

	return cmd
}

// runRender loads the dataset and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	p := newProgress(c.Logger)
	paths, err := writeArtifacts(result.Artifacts, formatsOrDefault(opts.Formats), input, output)
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}
	p.done(fmt.Sprintf("Wrote %d artifacts", len(paths)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.WordCount, result.Stats.RibbonCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printBands(result.Layout)
	return nil
}

// formatsOrDefault returns formats, or the pipeline default when empty.
func formatsOrDefault(formats []string) []string {
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}

// writeArtifacts writes one file per format and returns the paths written.
//
// With a single format, output names the file exactly ("-" for stdout).
// With several, output is a base path and each file gets its format's
// extension. An empty output derives the base from input, dropping a
// ".layout" suffix; scene JSON is then written as <base>.scene.json so that
// it never replaces a JSON dataset or layout.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) > 1 && output == "-" {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(formats))
	}

	base := basePath(output, input)
	if output == "" {
		base = strings.TrimSuffix(base, ".layout")
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s output", format)
		}

		path := base + "." + format
		if output == "" && format == pipeline.FormatJSON {
			path = base + ".scene.json"
		}
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		if path != "-" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	w, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}
