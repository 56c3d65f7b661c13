package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// Flags default to zero so that config file values and pipeline defaults
// apply to anything the user leaves unset.

// addLayoutFlags registers the flags that shape a layout.
func addLayoutFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVarP(&opts.VizType, "type", "t", "", "visualization type: chord (default), nodelink")
	fs.Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	fs.Float64Var(&opts.Height, "height", 0, "frame height (default 800)")
	fs.Float64Var(&opts.BaseWeight, "base-weight", 0, "arc weight every node gets regardless of its words (default 0.3)")
	fs.Float64Var(&opts.PadAngle, "pad-angle", 0, "gap between arcs in radians (default 0.015)")
	fs.Float64Var(&opts.FlowScale, "flow-scale", 0, "divisor turning word magnitudes into ribbon flow (default 20)")
	fs.Float64Var(&opts.FlowEpsilon, "flow-epsilon", 0, "minimum flow of a ribbon (default 0.001)")
	fs.StringVar(&opts.Engine, "engine", "", "graphviz engine for nodelink: circo (default), neato, twopi, fdp")
	fs.StringVar(&opts.Style, "style", "", "visual style: gradient (default), simple, handdrawn")
	fs.Int64Var(&opts.Seed, "seed", 0, "random seed for the handdrawn style (default 42)")
	fs.BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
}

// addRenderFlags registers the flags that shape rendered artifacts.
func addRenderFlags(fs *pflag.FlagSet, opts *pipeline.Options, formats *string) {
	fs.StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&opts.Title, "title", "", "title drawn above the diagram")
	fs.Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	fs.BoolVar(&opts.NoInteraction, "no-interaction", false, "omit the hover script from SVG output")
	fs.BoolVar(&opts.Detailed, "detailed", false, "show word statistics in nodelink labels")
	fs.StringVar(&opts.Palette.Positive, "positive", "", "color of positive sentiment (#rrggbb)")
	fs.StringVar(&opts.Palette.Neutral, "neutral", "", "color of neutral sentiment (#rrggbb)")
	fs.StringVar(&opts.Palette.Negative, "negative", "", "color of negative sentiment (#rrggbb)")
}
