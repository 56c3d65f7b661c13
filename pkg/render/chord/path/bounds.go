package path

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

func (r *Rect) extend(p Point) {
	r.MinX = min(r.MinX, p.X)
	r.MinY = min(r.MinY, p.Y)
	r.MaxX = max(r.MaxX, p.X)
	r.MaxY = max(r.MaxY, p.Y)
}

// Bounds returns the bounding box of the drawn path. Arcs contribute their
// endpoints plus every axis extreme they pass through. An empty path has a
// zero rectangle at the origin.
func (p Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}
	first := p.Segments[0].To
	r := Rect{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo, LineTo:
			r.extend(s.To)
		case ArcTo:
			r.extend(s.To)
			extendArc(&r, s)
		}
	}
	return r
}

// extendArc adds the quadrant points crossed by an origin-centered arc. The
// sweep flag picks the direction; the drawn span is taken modulo 2π.
func extendArc(r *Rect, s Segment) {
	lo, span := s.ArcStart, s.ArcEnd-s.ArcStart
	if !s.Sweep {
		lo, span = s.ArcEnd, s.ArcStart-s.ArcEnd
	}
	span = math.Mod(span, 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}
	first := math.Ceil(lo / (math.Pi / 2))
	// at most five quadrant angles fit in a span below 2π
	for i := 0; i < 5; i++ {
		theta := (first + float64(i)) * math.Pi / 2
		if !(theta <= lo+span) {
			break
		}
		r.extend(PointAt(s.Radius, theta))
	}
}
