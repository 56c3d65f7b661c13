// Package sentiment maps averaged word values to display colors.
//
// A value is classified into a [Band] by its sign alone: strictly positive,
// strictly negative, or exactly zero. NaN has no sign and lands in the
// neutral band. A [Palette] then assigns each band a representative fill
// and a three-stop gradient, and [Opacity] turns a ribbon's relative
// overlap into its alpha.
package sentiment

import "math"

// Band is the coarse sentiment class of a value.
type Band int

const (
	Neutral Band = iota
	Positive
	Negative
)

// Bands lists every band in display order.
var Bands = [...]Band{Positive, Neutral, Negative}

func (b Band) String() string {
	switch b {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// BandOf classifies v by its sign. Zero, negative zero and NaN are neutral.
func BandOf(v float64) Band {
	switch {
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	default:
		return Neutral
	}
}

const (
	baseOpacity    = 0.35
	opacityRange   = 0.4
	overlapCeiling = 0.5
)

// Opacity maps a ribbon's overlap in [0, 1] to its fill opacity. Overlap is
// clamped first, and only the lower half of the range changes the result,
// so opacities run from 0.35 to 0.55.
func Opacity(overlap float64) float64 {
	o := clamp01(overlap)
	return baseOpacity + min(overlapCeiling, o)*opacityRange
}

// Overlap is a ribbon's flow relative to the layout's maximum flow. A
// non-positive maximum is treated as 1.
func Overlap(flow, maxFlow float64) float64 {
	if !(maxFlow > 0) {
		maxFlow = 1
	}
	return flow / maxFlow
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}
