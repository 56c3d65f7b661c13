package layout

import "math"

// Option overrides one of the layout constants.
type Option func(*params)

type params struct {
	baseWeight  float64
	padAngle    float64
	flowScale   float64
	flowEpsilon float64
}

// WithBaseWeight sets the starting mass of every node. It must be positive
// so that empty nodes keep a visible arc; other values are ignored.
func WithBaseWeight(w float64) Option {
	return func(p *params) {
		if finite(w) && w > 0 {
			p.baseWeight = w
		}
	}
}

// WithPadAngle sets the gap between arcs in radians. Negative or non-finite
// values are ignored; oversized pads are clamped per node count by Build.
func WithPadAngle(a float64) Option {
	return func(p *params) {
		if finite(a) && a >= 0 {
			p.padAngle = a
		}
	}
}

// WithFlowScale sets the ribbon flow multiplier.
func WithFlowScale(s float64) Option {
	return func(p *params) {
		if finite(s) && s > 0 {
			p.flowScale = s
		}
	}
}

// WithFlowEpsilon sets the visibility threshold for ribbons.
func WithFlowEpsilon(e float64) Option {
	return func(p *params) {
		if finite(e) && e >= 0 {
			p.flowEpsilon = e
		}
	}
}

func newParams(opts ...Option) params {
	p := params{
		baseWeight:  DefaultBaseWeight,
		padAngle:    DefaultPadAngle,
		flowScale:   DefaultFlowScale,
		flowEpsilon: DefaultFlowEpsilon,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// padFor keeps the total padding at or below half the circle.
func (p params) padFor(n int) float64 {
	return min(p.padAngle, math.Pi/float64(n))
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
