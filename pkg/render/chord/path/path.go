// Package path turns polar chord geometry into SVG path descriptors.
//
// Points use screen coordinates centered on the origin: an angle θ at radius
// r maps to (r·cos θ, r·sin θ) with y growing downward, so increasing angles
// run clockwise on screen. Angles are used as given and never normalized.
//
// Every function here is total. Negative or NaN radii collapse to zero,
// which yields a zero-area path rather than an error.
package path

import (
	"math"
	"strconv"
	"strings"
)

// Op is a path command.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	ArcTo  Op = 'A'
	Close  Op = 'Z'
)

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// PointAt returns the point at angle theta on a circle of radius r around
// the origin.
func PointAt(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Segment is one path command. Radius, LargeArc, Sweep and the arc angles
// are only meaningful for ArcTo; To is unused for Close.
type Segment struct {
	Op       Op
	To       Point
	Radius   float64
	LargeArc bool
	Sweep    bool

	// Start and End angles of an ArcTo around the origin, kept for bounds.
	ArcStart, ArcEnd float64
}

// Path is an ordered list of segments.
type Path struct {
	Segments []Segment
}

// Arc returns an open circular arc from start to end. The large-arc flag is
// set when the sweep exceeds π; the sweep flag is always set.
func Arc(radius, start, end float64) Path {
	r := sanitize(radius)
	return Path{Segments: []Segment{
		{Op: MoveTo, To: PointAt(r, start)},
		arcTo(r, start, end, end-start > math.Pi, true),
	}}
}

// Ribbon returns a closed band between angles a and b: the outer arc from a
// to b, a straight line inward, the inner arc back from b to a and a close.
// The inner arc's large-arc flag compares a−b against π as written, so it
// is only set when a lies more than π past b.
func Ribbon(inner, outer, a, b float64) Path {
	ri, ro := sanitize(inner), sanitize(outer)
	return Path{Segments: []Segment{
		{Op: MoveTo, To: PointAt(ro, a)},
		arcTo(ro, a, b, b-a > math.Pi, true),
		{Op: LineTo, To: PointAt(ri, b)},
		arcTo(ri, b, a, a-b > math.Pi, false),
		{Op: Close},
	}}
}

func arcTo(r, from, to float64, large, sweep bool) Segment {
	return Segment{
		Op:       ArcTo,
		To:       PointAt(r, to),
		Radius:   r,
		LargeArc: large,
		Sweep:    sweep,
		ArcStart: from,
		ArcEnd:   to,
	}
}

func sanitize(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return r
}

// String renders the path as SVG path data with three decimals.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(s.Op))
		switch s.Op {
		case MoveTo, LineTo:
			b.WriteByte(' ')
			writePoint(&b, s.To)
		case ArcTo:
			b.WriteByte(' ')
			b.WriteString(num(s.Radius))
			b.WriteByte(' ')
			b.WriteString(num(s.Radius))
			b.WriteString(" 0 ")
			b.WriteString(flag(s.LargeArc))
			b.WriteByte(' ')
			b.WriteString(flag(s.Sweep))
			b.WriteByte(' ')
			writePoint(&b, s.To)
		}
	}
	return b.String()
}

// MarshalText encodes the path as SVG path data so that shapes serialize
// as plain strings.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(num(pt.X))
	b.WriteByte(' ')
	b.WriteString(num(pt.Y))
}

// num formats with three decimals and folds "-0.000" into "0.000".
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
