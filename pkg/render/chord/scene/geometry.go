package scene

const (
	outerRadiusRatio  = 0.8
	arcThicknessRatio = 0.08
	ribbonRatio       = 0.22
	ribbonGapRatio    = 0.015
	labelOffsetRatio  = 0.06

	// MinRibbonFraction keeps the faintest ribbon visible.
	MinRibbonFraction = 0.12
)

// Geometry holds the frame size and radii used to place shapes. All shapes
// are centered on the origin.
type Geometry struct {
	Width, Height   float64
	OuterRadius     float64 // outer edge of the arc ring
	ArcThickness    float64 // radial width of the arc ring
	RibbonThickness float64 // ribbon width at full overlap
	RibbonGap       float64 // space between the ring and the ribbons
	LabelOffset     float64 // distance from the ring to labels
}

// DefaultGeometry fits the chord diagram into a width×height frame,
// leaving a margin for labels.
func DefaultGeometry(width, height float64) Geometry {
	width, height = max(1, width), max(1, height)
	r := min(width, height) / 2 * outerRadiusRatio
	return Geometry{
		Width:           width,
		Height:          height,
		OuterRadius:     r,
		ArcThickness:    r * arcThicknessRatio,
		RibbonThickness: r * ribbonRatio,
		RibbonGap:       r * ribbonGapRatio,
		LabelOffset:     r * labelOffsetRatio,
	}
}

// InnerRadius is the inner edge of the arc ring.
func (g Geometry) InnerRadius() float64 {
	return max(0, g.OuterRadius-g.ArcThickness)
}

// ArcRadius is the centerline of the arc ring, where arc strokes are drawn.
func (g Geometry) ArcRadius() float64 {
	return max(0, g.OuterRadius-g.ArcThickness/2)
}

// LabelRadius is the radius labels are anchored at.
func (g Geometry) LabelRadius() float64 {
	return g.OuterRadius + g.LabelOffset
}
