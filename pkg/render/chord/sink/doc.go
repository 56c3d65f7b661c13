// Package sink renders chord scenes to output formats.
//
// [RenderSVG] is the primary sink. It writes shapes in scene order (ribbons,
// then arcs, then labels) through a [styles.Style], sizes the viewBox around
// the origin-centered diagram, and embeds a small script that highlights a
// node and its ribbons on hover.
//
// [RenderJSON] emits the resolved scene for clients that draw themselves.
// [RenderPNG] and [RenderPDF] convert the SVG with rsvg-convert.
package sink
