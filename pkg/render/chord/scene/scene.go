package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/path"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

// Kind distinguishes shape types.
type Kind string

const (
	KindRibbon Kind = "ribbon"
	KindArc    Kind = "arc"
)

// Anchor is the horizontal text anchor of a label.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// Shape is one drawable element. Arcs are stroked along Path with
// StrokeWidth; ribbons are filled.
type Shape struct {
	Kind        Kind           `json:"kind"`
	ID          string         `json:"id"`
	Nodes       [2]int         `json:"nodes"`
	Path        path.Path      `json:"d"`
	Band        sentiment.Band `json:"band"`
	Fill        string         `json:"fill"`
	Opacity     float64        `json:"opacity"`
	StrokeWidth float64        `json:"stroke_width,omitempty"`
	Value       float64        `json:"value"`
	Flow        float64        `json:"flow,omitempty"`
	Overlap     float64        `json:"overlap,omitempty"`
	Label       string         `json:"label,omitempty"`
	LabelAt     path.Point     `json:"label_at"`
	LabelAnchor Anchor         `json:"label_anchor,omitempty"`
}

// Scene is a fully resolved chord diagram.
type Scene struct {
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Palette sentiment.Palette `json:"palette"`
	Shapes  []Shape           `json:"shapes"`
}

// Ribbons returns the ribbon shapes in draw order.
func (s Scene) Ribbons() []Shape { return s.filter(KindRibbon) }

// Arcs returns the arc shapes in draw order.
func (s Scene) Arcs() []Shape { return s.filter(KindArc) }

func (s Scene) filter(k Kind) []Shape {
	var out []Shape
	for _, sh := range s.Shapes {
		if sh.Kind == k {
			out = append(out, sh)
		}
	}
	return out
}

// Bounds covers every shape path and label anchor.
func (s Scene) Bounds() path.Rect {
	var r path.Rect
	for i, sh := range s.Shapes {
		b := sh.Path.Bounds()
		if sh.StrokeWidth > 0 {
			h := sh.StrokeWidth / 2
			b = path.Rect{MinX: b.MinX - h, MinY: b.MinY - h, MaxX: b.MaxX + h, MaxY: b.MaxY + h}
		}
		if sh.Label != "" {
			p := sh.LabelAt
			b = b.Union(path.Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
		}
		if i == 0 {
			r = b
			continue
		}
		r = r.Union(b)
	}
	return r
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	labels []string
}

// WithLabels attaches one label per node index. Missing or empty entries
// leave the node unlabeled.
func WithLabels(labels []string) Option {
	return func(b *builder) { b.labels = labels }
}

// Build resolves a layout into a scene. It never fails.
func Build(l layout.Layout, g Geometry, p sentiment.Palette, opts ...Option) Scene {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	shapes := make([]Shape, 0, len(l.Ribbons)+len(l.Arcs))
	for _, r := range l.Ribbons {
		if r.I < 0 || r.J >= len(l.Arcs) {
			continue
		}
		shapes = append(shapes, ribbonShape(l, g, p, r))
	}
	for _, a := range l.Arcs {
		shapes = append(shapes, arcShape(g, p, a, b.label(a.Index)))
	}

	return Scene{
		Width:   g.Width,
		Height:  g.Height,
		Palette: p,
		Shapes:  shapes,
	}
}

func ribbonShape(l layout.Layout, g Geometry, p sentiment.Palette, r layout.Ribbon) Shape {
	overlap := sentiment.Overlap(r.Flow, l.MaxFlow)
	paint := p.RibbonColor(r.AvgValue, overlap)

	outer := max(0, g.InnerRadius()-g.RibbonGap)
	frac := max(MinRibbonFraction, min(1, overlap))
	inner := max(0, outer-g.RibbonThickness*frac)

	a, b := l.Arcs[r.I].MidAngle(), l.Arcs[r.J].MidAngle()
	return Shape{
		Kind:    KindRibbon,
		ID:      fmt.Sprintf("ribbon-%d-%d", r.I, r.J),
		Nodes:   [2]int{r.I, r.J},
		Path:    path.Ribbon(inner, outer, a, b),
		Band:    sentiment.BandOf(r.AvgValue),
		Fill:    paint.Fill,
		Opacity: paint.Opacity,
		Value:   r.AvgValue,
		Flow:    r.Flow,
		Overlap: overlap,
	}
}

func arcShape(g Geometry, p sentiment.Palette, a layout.NodeArc, label string) Shape {
	avg := a.AvgValue()
	s := Shape{
		Kind:        KindArc,
		ID:          fmt.Sprintf("arc-%d", a.Index),
		Nodes:       [2]int{a.Index, a.Index},
		Path:        path.Arc(g.ArcRadius(), a.StartAngle, a.EndAngle),
		Band:        sentiment.BandOf(avg),
		Fill:        p.ArcColor(avg),
		Opacity:     1,
		StrokeWidth: g.ArcThickness,
		Value:       avg,
	}
	if label != "" {
		mid := a.MidAngle()
		s.Label = label
		s.LabelAt = path.PointAt(g.LabelRadius(), mid)
		s.LabelAnchor = AnchorStart
		if math.Cos(mid) < 0 {
			s.LabelAnchor = AnchorEnd
		}
	}
	return s
}

func (b builder) label(idx int) string {
	if idx < 0 || idx >= len(b.labels) {
		return ""
	}
	return b.labels[idx]
}

// Labels returns the dominant word of each node: the word with the largest
// absolute clamped value, ties broken by text. Node indices wrap exactly as
// they do in the layout. Nodes without words get an empty label.
func Labels(nodeCount int, words []layout.WeightedWord) []string {
	n := max(1, nodeCount)
	best := make([]*layout.WeightedWord, n)
	for i := range words {
		w := &words[i]
		k := layout.WrapIndex(w.NodeIndex, n)
		if best[k] == nil || beats(w, best[k]) {
			best[k] = w
		}
	}
	out := make([]string, n)
	for k, w := range best {
		if w != nil {
			out[k] = w.Text
		}
	}
	return out
}

func beats(a, b *layout.WeightedWord) bool {
	ma, mb := math.Abs(layout.ClampValue(a.Value)), math.Abs(layout.ClampValue(b.Value))
	if ma != mb {
		return ma > mb
	}
	return strings.Compare(a.Text, b.Text) < 0
}

// IDs returns shape IDs in draw order.
func (s Scene) IDs() []string {
	ids := make([]string, len(s.Shapes))
	for i, sh := range s.Shapes {
		ids[i] = sh.ID
	}
	return ids
}
