package layout

import "math"

const (
	// DefaultBaseWeight is the mass every node starts with.
	DefaultBaseWeight = 0.3
	// DefaultPadAngle is the gap in radians between consecutive arcs.
	DefaultPadAngle = 0.015
	// DefaultFlowScale multiplies the normalized pair product.
	DefaultFlowScale = 20.0
	// DefaultFlowEpsilon is the flow at or below which a ribbon is dropped.
	DefaultFlowEpsilon = 0.001

	// MinValue and MaxValue bound a word's sentiment value.
	MinValue = -5.0
	MaxValue = 5.0

	wordMassFloor = 0.5
	minMaxFlow    = 1.0
)

// WeightedWord is a single input word. Value carries polarity and magnitude,
// NodeIndex selects the node (wrapped modulo the node count).
type WeightedWord struct {
	Text      string
	Value     float64
	NodeIndex int
}

// NodeArc is the angular span assigned to one node.
type NodeArc struct {
	Index       int
	StartAngle  float64 // radians
	EndAngle    float64 // radians
	TotalWeight float64 // base weight plus word mass
	ValueSum    float64 // sum of clamped word values
	Count       int     // words landing on this node
}

// Span returns the angular width of the arc.
func (a NodeArc) Span() float64 { return a.EndAngle - a.StartAngle }

// MidAngle returns the angle halfway along the arc.
func (a NodeArc) MidAngle() float64 { return (a.StartAngle + a.EndAngle) / 2 }

// AvgValue returns the mean word value at this node, or 0 without words.
func (a NodeArc) AvgValue() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.ValueSum / float64(a.Count)
}

// Ribbon connects nodes I and J (I < J).
type Ribbon struct {
	I, J     int
	Flow     float64
	AvgValue float64
}

// Layout is the result of [Build]. Arcs are in node-index order; ribbons are
// ordered by (I, J).
type Layout struct {
	NodeCount int
	PadAngle  float64 // effective pad after clamping
	TotalMass float64
	MaxFlow   float64
	Arcs      []NodeArc
	Ribbons   []Ribbon
}

// Ribbon returns the ribbon between i and j in either order.
func (l Layout) Ribbon(i, j int) (Ribbon, bool) {
	if i > j {
		i, j = j, i
	}
	for _, r := range l.Ribbons {
		if r.I == i && r.J == j {
			return r, true
		}
	}
	return Ribbon{}, false
}

// Build computes the chord layout for nodeCount nodes and the given words.
// The words slice is never modified.
func Build(nodeCount int, words []WeightedWord, opts ...Option) Layout {
	p := newParams(opts...)
	n := max(1, nodeCount)
	pad := p.padFor(n)

	arcs := make([]NodeArc, n)
	for k := range arcs {
		arcs[k] = NodeArc{Index: k, TotalWeight: p.baseWeight}
	}
	for _, w := range words {
		v := ClampValue(w.Value)
		a := &arcs[WrapIndex(w.NodeIndex, n)]
		a.TotalWeight += wordMassFloor + math.Abs(v)
		a.ValueSum += v
		a.Count++
	}

	var total float64
	for _, a := range arcs {
		total += a.TotalWeight
	}
	if total <= 0 {
		total = 1
	}

	usable := 2*math.Pi - float64(n)*pad
	var before float64
	for k := range arcs {
		offset := float64(k) * pad
		arcs[k].StartAngle = before/total*usable + offset
		before += arcs[k].TotalWeight
		arcs[k].EndAngle = before/total*usable + offset
	}

	ribbons, maxFlow := buildRibbons(arcs, total, p)
	return Layout{
		NodeCount: n,
		PadAngle:  pad,
		TotalMass: total,
		MaxFlow:   maxFlow,
		Arcs:      arcs,
		Ribbons:   ribbons,
	}
}

func buildRibbons(arcs []NodeArc, total float64, p params) ([]Ribbon, float64) {
	var ribbons []Ribbon
	maxFlow := minMaxFlow
	for i := 0; i < len(arcs); i++ {
		for j := i + 1; j < len(arcs); j++ {
			a, b := arcs[i], arcs[j]
			if a.Count == 0 && b.Count == 0 {
				continue
			}
			flow := PairFlow(a.TotalWeight, b.TotalWeight, total, p.flowScale)
			if flow <= p.flowEpsilon {
				continue
			}
			ribbons = append(ribbons, Ribbon{
				I:        i,
				J:        j,
				Flow:     flow,
				AvgValue: PairAverage(a.AvgValue(), b.AvgValue()),
			})
			maxFlow = max(maxFlow, flow)
		}
	}
	return ribbons, maxFlow
}

// PairFlow is the symmetric flow between two node weights given the total
// mass. The +1 keeps small totals from blowing up.
func PairFlow(wi, wj, total, scale float64) float64 {
	return wi * wj / (total*total + 1) * scale
}

// PairAverage is the unweighted mean of two node averages.
func PairAverage(a, b float64) float64 { return (a + b) / 2 }

// ClampValue limits v to [MinValue, MaxValue]. NaN becomes 0.
func ClampValue(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(MinValue, min(MaxValue, v))
}

// WrapIndex maps any integer onto [0, n). n must be positive.
func WrapIndex(idx, n int) int {
	return ((idx % n) + n) % n
}
