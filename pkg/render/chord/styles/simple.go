package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
)

const simpleFont = "system-ui, -apple-system, Helvetica, Arial, sans-serif"

// Simple draws flat band colors with no defs.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer, scene.Scene) {}

func (Simple) RenderRibbon(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <path id="%s" class="ribbon %s" data-nodes="%s" d="%s" fill="%s" fill-opacity="%.3f" stroke="%s" stroke-opacity="0.25" stroke-width="0.5"/>`+"\n",
		s.ID, s.Band, DataNodes(s), s.Path, s.Fill, s.Opacity, s.Fill)
}

func (Simple) RenderArc(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <path id="%s" class="arc %s" data-nodes="%s" d="%s" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
		s.ID, s.Band, DataNodes(s), s.Path, s.Fill, s.Opacity, s.StrokeWidth)
}

func (Simple) RenderLabel(buf *bytes.Buffer, s scene.Shape) {
	WriteLabel(buf, s, simpleFont, "#333")
}
