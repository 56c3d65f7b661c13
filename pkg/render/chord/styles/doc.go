// Package styles defines visual styles for chord rendering.
//
// # Overview
//
// A style decides how each resolved [scene.Shape] becomes SVG markup. The
// scene already carries paths, bands, fills and opacities, so styles only
// choose presentation:
//
//   - [Style]: The interface that all styles implement
//   - [Simple]: Flat band colors
//   - [Gradient]: Three-stop linear gradients per sentiment band
//   - [handdrawn]: A sketchy, wobbly look (in subpackage)
//
// # The Style Interface
//
//   - RenderDefs: SVG <defs> section (gradients, filters)
//   - RenderRibbon: A filled ribbon between two nodes
//   - RenderArc: A stroked node arc
//   - RenderLabel: A node's dominant-word label
//
// Usage:
//
//	svg := sink.RenderSVG(sc, sink.WithStyle(styles.Gradient{}))
//
// Every element gets an id and a data-nodes attribute so the interaction
// script in the SVG sink can highlight a node together with its ribbons.
package styles
