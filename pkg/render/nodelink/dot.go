package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/render"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

// DefaultEngine places nodes on a circle, matching the chord wheel.
const DefaultEngine = graphviz.CIRCO

// Engines lists the Graphviz layouts that suit undirected diagrams.
var Engines = []graphviz.Layout{graphviz.CIRCO, graphviz.NEATO, graphviz.TWOPI, graphviz.FDP}

const (
	minPenWidth   = 1.0
	penWidthRange = 5.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels names the nodes by index. Missing or empty entries fall back
	// to "node k".
	Labels []string

	// Detailed adds the word count and average value to node labels.
	Detailed bool
}

// ParseEngine validates a Graphviz layout name. An empty name selects
// [DefaultEngine].
func ParseEngine(name string) (graphviz.Layout, error) {
	if name == "" {
		return DefaultEngine, nil
	}
	for _, e := range Engines {
		if string(e) == name {
			return e, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidVizType, "unsupported graphviz engine: %q (valid: %v)", name, Engines)
}

// ToDOT converts a chord layout to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Nodes are filled with their sentiment color. Ribbons become edges whose
// pen width grows with flow relative to the layout's maximum flow.
func ToDOT(l layout.Layout, p sentiment.Palette, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fontsize=20, fontcolor=\"#212121\", penwidth=0];\n")
	buf.WriteString("  edge [penwidth=1];\n")
	buf.WriteString("\n")

	for _, a := range l.Arcs {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n",
			nodeID(a.Index), fmtLabel(a, opts), p.ArcColor(a.AvgValue()))
	}

	buf.WriteString("\n")
	for _, r := range l.Ribbons {
		overlap := sentiment.Overlap(r.Flow, l.MaxFlow)
		paint := p.RibbonColor(r.AvgValue, overlap)
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%s, color=%q];\n",
			nodeID(r.I), nodeID(r.J), strconv.FormatFloat(PenWidth(overlap), 'f', 2, 64), withAlpha(paint.Fill, paint.Opacity))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// PenWidth maps a normalized overlap in [0, 1] to an edge width.
func PenWidth(overlap float64) float64 {
	if math.IsNaN(overlap) {
		overlap = 0
	}
	return minPenWidth + penWidthRange*max(0, min(1, overlap))
}

func nodeID(k int) string { return "n" + strconv.Itoa(k) }

func fmtLabel(a layout.NodeArc, opts Options) string {
	label := fmt.Sprintf("node %d", a.Index)
	if a.Index < len(opts.Labels) && opts.Labels[a.Index] != "" {
		label = opts.Labels[a.Index]
	}
	if !opts.Detailed {
		return label
	}
	parts := []string{
		label,
		fmt.Sprintf("words: %d", a.Count),
		fmt.Sprintf("avg: %.2f", a.AvgValue()),
	}
	return strings.Join(parts, "\n")
}

// withAlpha appends an alpha byte to a #rrggbb color.
func withAlpha(hex string, opacity float64) string {
	alpha := int(math.Round(max(0, min(1, opacity)) * 255))
	return fmt.Sprintf("%s%02x", hex, alpha)
}

// RenderSVG renders a DOT graph to SVG using the given Graphviz layout.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string, engine graphviz.Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if engine == "" {
		engine = DefaultEngine
	}
	gv.SetLayout(engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, engine graphviz.Layout) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, engine graphviz.Layout, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
