package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type. Both kinds carry the computed arcs
// and ribbons; VizType says how to draw them:
//
//	Chord ("chord"):
//	  - Arcs, Ribbons: drawn as a radial chord diagram
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "circo")
//
// Shared fields (both types):
//   - Width, Height: frame dimensions
//   - Style: visual style ("simple", "gradient", "handdrawn")
//   - Labels: dominant word per node
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`
	Seed   int64   `json:"seed,omitempty" bson:"seed,omitempty"`

	// Chord structure (shared)
	NodeCount int      `json:"node_count" bson:"node_count"`
	PadAngle  float64  `json:"pad_angle" bson:"pad_angle"`
	TotalMass float64  `json:"total_mass" bson:"total_mass"`
	MaxFlow   float64  `json:"max_flow" bson:"max_flow"`
	Arcs      []Arc    `json:"arcs" bson:"arcs"`
	Ribbons   []Ribbon `json:"ribbons,omitempty" bson:"ribbons,omitempty"`
	Labels    []string `json:"labels,omitempty" bson:"labels,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsChord returns true if this is a chord layout.
func (l *Layout) IsChord() bool { return l.VizType == VizTypeChord }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Arc is a serialized node arc.
type Arc struct {
	Index       int     `json:"index" bson:"index"`
	StartAngle  float64 `json:"start_angle" bson:"start_angle"`
	EndAngle    float64 `json:"end_angle" bson:"end_angle"`
	TotalWeight float64 `json:"total_weight" bson:"total_weight"`
	ValueSum    float64 `json:"value_sum" bson:"value_sum"`
	Count       int     `json:"count" bson:"count"`
	Band        string  `json:"band" bson:"band"`
}

// Ribbon is a serialized ribbon.
type Ribbon struct {
	I        int     `json:"i" bson:"i"`
	J        int     `json:"j" bson:"j"`
	Flow     float64 `json:"flow" bson:"flow"`
	AvgValue float64 `json:"avg_value" bson:"avg_value"`
	Band     string  `json:"band" bson:"band"`
}

// =============================================================================
// Engine ↔ Layout Conversion
// =============================================================================

// FromLayout converts an engine layout into a chord layout. Bands are
// recorded for clients that do not recompute them.
func FromLayout(l layout.Layout) Layout {
	out := Layout{
		VizType:   VizTypeChord,
		NodeCount: l.NodeCount,
		PadAngle:  l.PadAngle,
		TotalMass: l.TotalMass,
		MaxFlow:   l.MaxFlow,
		Arcs:      make([]Arc, len(l.Arcs)),
		Ribbons:   make([]Ribbon, len(l.Ribbons)),
	}
	for i, a := range l.Arcs {
		out.Arcs[i] = Arc{
			Index:       a.Index,
			StartAngle:  a.StartAngle,
			EndAngle:    a.EndAngle,
			TotalWeight: a.TotalWeight,
			ValueSum:    a.ValueSum,
			Count:       a.Count,
			Band:        sentiment.BandOf(a.AvgValue()).String(),
		}
	}
	for i, r := range l.Ribbons {
		out.Ribbons[i] = Ribbon{
			I:        r.I,
			J:        r.J,
			Flow:     r.Flow,
			AvgValue: r.AvgValue,
			Band:     sentiment.BandOf(r.AvgValue).String(),
		}
	}
	return out
}

// ToLayout converts a serialized layout of either kind back into an engine
// layout. It fails when the arcs are missing or out of order, or when a
// ribbon references a node that does not exist.
func ToLayout(s Layout) (layout.Layout, error) {
	if err := validateStructure(s); err != nil {
		return layout.Layout{}, err
	}
	out := layout.Layout{
		NodeCount: len(s.Arcs),
		PadAngle:  s.PadAngle,
		TotalMass: s.TotalMass,
		MaxFlow:   s.MaxFlow,
		Arcs:      make([]layout.NodeArc, len(s.Arcs)),
	}
	for i, a := range s.Arcs {
		out.Arcs[i] = layout.NodeArc{
			Index:       a.Index,
			StartAngle:  a.StartAngle,
			EndAngle:    a.EndAngle,
			TotalWeight: a.TotalWeight,
			ValueSum:    a.ValueSum,
			Count:       a.Count,
		}
	}
	if len(s.Ribbons) > 0 {
		out.Ribbons = make([]layout.Ribbon, len(s.Ribbons))
		for i, r := range s.Ribbons {
			out.Ribbons[i] = layout.Ribbon{I: r.I, J: r.J, Flow: r.Flow, AvgValue: r.AvgValue}
		}
	}
	return out, nil
}

func validateStructure(s Layout) error {
	if len(s.Arcs) == 0 {
		return fmt.Errorf("layout must contain arcs")
	}
	if s.NodeCount != 0 && s.NodeCount != len(s.Arcs) {
		return fmt.Errorf("node_count %d does not match %d arcs", s.NodeCount, len(s.Arcs))
	}
	for i, a := range s.Arcs {
		if a.Index != i {
			return fmt.Errorf("arc %d has index %d", i, a.Index)
		}
	}
	for _, r := range s.Ribbons {
		if r.I < 0 || r.I >= r.J || r.J >= len(s.Arcs) {
			return fmt.Errorf("ribbon (%d,%d) out of range for %d nodes", r.I, r.J, len(s.Arcs))
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeChord
	}

	switch {
	case l.IsChord():
		if err := validateStructure(l); err != nil {
			return Layout{}, fmt.Errorf("chord layout: %w", err)
		}
	case l.IsNodelink():
		if l.DOT == "" {
			return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
		}
	default:
		return Layout{}, fmt.Errorf("unknown viz_type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
