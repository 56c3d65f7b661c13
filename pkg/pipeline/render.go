package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sink"
	"github.com/matzehuels/chordwheel/pkg/render/nodelink"
)

// RenderNodelink generates nodelink outputs from a layout.
// The layout must be a nodelink layout (VizType = "nodelink") with a DOT string.
func RenderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot, engine, err := nodelink.Parse(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "nodelink layout")
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot, engine)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, engine, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot, engine)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderChord generates chord outputs from a layout.
func RenderChord(ctx context.Context, gl graph.Layout, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, gl)

	sc, err := BuildScene(gl, opts)
	if err != nil {
		return nil, err
	}
	style, err := sink.StyleByName(opts.Style, opts.Seed)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.NoInteraction {
		svgOpts = append(svgOpts, sink.WithoutInteraction())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, sc, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(sc, sink.WithJSONStyle(opts.Style), sink.WithJSONSeed(opts.Seed), sink.WithJSONIndent())
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chord format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// BuildScene turns a serialized chord layout into a drawable scene using the
// frame size, labels and palette of the options.
func BuildScene(gl graph.Layout, opts Options) (scene.Scene, error) {
	l, err := graph.ToLayout(gl)
	if err != nil {
		return scene.Scene{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "convert layout")
	}
	p, err := opts.palette()
	if err != nil {
		return scene.Scene{}, err
	}
	width, height := gl.Width, gl.Height
	if width <= 0 || height <= 0 {
		width, height = opts.Width, opts.Height
	}
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return scene.Build(l, scene.DefaultGeometry(width, height), p, scene.WithLabels(gl.Labels)), nil
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering settings.
func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	if opts.Seed == 0 && l.Seed != 0 {
		opts.Seed = l.Seed
	}
	if opts.Width == 0 && opts.Height == 0 && l.Width > 0 && l.Height > 0 {
		opts.Width, opts.Height = l.Width, l.Height
	}
	if l.Engine != "" && opts.Engine == "" {
		opts.Engine = l.Engine
	}
	return opts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	return RenderFromLayout(ctx, parsed, opts)
}

// RenderFromLayout renders output from a graph.Layout, dispatching on its
// viz type. This is the preferred entry point when you have a graph.Layout.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.IsNodelink() {
		opts.VizType = graph.VizTypeNodelink
		return RenderNodelink(ctx, l, opts)
	}
	return RenderChord(ctx, l, opts)
}
