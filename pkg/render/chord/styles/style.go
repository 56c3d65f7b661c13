package styles

import (
	"bytes"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
)

// Style defines the visual appearance for chord rendering.
type Style interface {
	// RenderDefs writes SVG <defs> content for the scene (gradients, filters).
	RenderDefs(buf *bytes.Buffer, sc scene.Scene)
	// RenderRibbon writes the SVG for a single ribbon.
	RenderRibbon(buf *bytes.Buffer, s scene.Shape)
	// RenderArc writes the SVG for a single node arc.
	RenderArc(buf *bytes.Buffer, s scene.Shape)
	// RenderLabel writes the SVG for a node arc's label, if it has one.
	RenderLabel(buf *bytes.Buffer, s scene.Shape)
}

// Names of the built-in styles.
const (
	NameSimple    = graph.StyleSimple
	NameGradient  = graph.StyleGradient
	NameHanddrawn = graph.StyleHanddrawn
)
