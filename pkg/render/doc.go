// Package render provides visualization rendering for chord diagrams.
//
// # Overview
//
// This package contains the rendering pipeline that turns weighted words
// into pictures. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The radial chord view (in [chord] subpackages)
//   - A node-link view of the same layout (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both chord and node-link
// sinks go through them.
//
//	svg := sink.RenderSVG(sc, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Chord View
//
// The chord subpackages form a strict pipeline, each stage pure:
//   - [chord/layout]: Arc and ribbon computation from weighted words
//   - [chord/path]: Polar geometry to SVG path data
//   - [chord/sentiment]: Sentiment bands, palettes and opacity
//   - [chord/scene]: Draw-ordered shapes with resolved colors
//   - [chord/styles]: Visual styles (simple, gradient, handdrawn)
//   - [chord/sink]: Output formats (SVG, JSON, PNG, PDF)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws the same layout as a circular graph using
// Graphviz: nodes are the chord arcs and edges are the ribbons.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package render
