// Package nodelink renders a chord layout as a traditional node-link diagram.
//
// # Overview
//
// This package draws the same nodes and ribbons as the chord renderer, but
// lets Graphviz place them: every node becomes an ellipse filled with its
// sentiment color and every ribbon becomes an undirected edge whose width
// and opacity follow the ribbon's flow. It is an alternative for readers who
// prefer explicit edges over a radial wheel.
//
// # Usage
//
// Convert a layout to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(l, sentiment.DefaultPalette(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, graphviz.CIRCO)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, graphviz.CIRCO)
//	png, err := nodelink.RenderPNG(ctx, dot, graphviz.CIRCO, 2.0) // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Labels: node labels, usually the dominant word per node
//   - Detailed: adds word count and average value to each label
//
// # Serialization
//
// [Export] packages the DOT source together with the chord structure into a
// [graph.Layout] with viz_type "nodelink"; [Parse] extracts the DOT again.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
