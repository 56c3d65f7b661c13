package pipeline

import (
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Both chord and nodelink layouts include the arcs, ribbons and dominant
// word labels; nodelink layouts add the Graphviz DOT source.
func GenerateLayout(ds graph.Dataset, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	if err := ValidateDataset(ds); err != nil {
		return graph.Layout{}, err
	}

	n := ds.EffectiveNodeCount()
	words := ds.WeightedWords()
	l := layout.Build(n, words, opts.LayoutOptions()...)
	labels := scene.Labels(l.NodeCount, words)

	if opts.IsNodelink() {
		return generateNodelinkLayout(l, labels, opts)
	}
	return generateChordLayout(l, labels, opts), nil
}

// =============================================================================
// Chord
// =============================================================================

func generateChordLayout(l layout.Layout, labels []string, opts Options) graph.Layout {
	out := graph.FromLayout(l)
	out.Width = opts.Width
	out.Height = opts.Height
	out.Style = opts.Style
	out.Seed = opts.Seed
	out.Labels = labels
	return out
}

// =============================================================================
// Nodelink
// =============================================================================

func generateNodelinkLayout(l layout.Layout, labels []string, opts Options) (graph.Layout, error) {
	p, err := opts.palette()
	if err != nil {
		return graph.Layout{}, err
	}
	dot := nodelink.ToDOT(l, p, nodelink.Options{Labels: labels, Detailed: opts.Detailed})
	out := nodelink.Export(dot, l, graphviz.Layout(opts.Engine), labels, opts.Width, opts.Height, opts.Style)
	out.Seed = opts.Seed
	return out, nil
}
