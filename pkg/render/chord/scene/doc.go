// Package scene turns a chord layout into an ordered list of drawable shapes.
//
// # Overview
//
// [Build] combines a [layout.Layout], a [Geometry] and a
// [sentiment.Palette] into a [Scene]. The scene is the contract between
// the pure layout engine and any renderer: every shape carries its SVG path,
// its sentiment band, a resolved fill and an opacity. Renderers only have to
// draw shapes in order.
//
// # Draw Order
//
// All ribbons come first, in layout order, followed by all node arcs in
// index order, so arcs always sit on top of the ribbons that touch them.
//
// # Ribbons
//
// A ribbon spans the angles between the mid-points of its two node arcs. It
// hugs the inside of the arc ring and its radial thickness grows with the
// ribbon's overlap (flow relative to the layout's maximum flow), so heavier
// connections read as wider bands:
//
//	outer = InnerRadius − RibbonGap
//	inner = outer − RibbonThickness·max(MinRibbonFraction, overlap)
//
// # Labels
//
// [Labels] picks the dominant word for each node (largest absolute value,
// ties broken alphabetically). Passing the result to [WithLabels] places one
// label just outside each arc, anchored away from the circle.
package scene
