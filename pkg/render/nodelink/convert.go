package nodelink

import (
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
)

// Export creates a serializable nodelink layout from a DOT string.
//
// Graphviz computes node positions at render time, so the layout carries the
// DOT source plus the chord structure it was derived from. Use this to cache
// the layout or return it from an API.
func Export(dot string, l layout.Layout, engine graphviz.Layout, labels []string, width, height float64, style string) graph.Layout {
	result := graph.FromLayout(l)
	result.VizType = graph.VizTypeNodelink
	result.DOT = dot
	result.Engine = string(engine)
	result.Labels = labels
	result.Width = width
	result.Height = height
	result.Style = style
	return result
}

// Parse extracts the DOT string and engine from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(l graph.Layout) (string, graphviz.Layout, error) {
	if l.VizType != "" && l.VizType != graph.VizTypeNodelink {
		return "", "", fmt.Errorf("invalid viz_type for nodelink layout: %q", l.VizType)
	}
	if l.DOT == "" {
		return "", "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	engine, err := ParseEngine(l.Engine)
	if err != nil {
		return "", "", err
	}
	return l.DOT, engine, nil
}
