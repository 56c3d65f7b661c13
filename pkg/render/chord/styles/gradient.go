package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

// Gradient fills ribbons and arcs with per-band linear gradients built from
// the scene palette's stops.
type Gradient struct{}

// GradientID returns the defs id of the gradient for band b.
func GradientID(b sentiment.Band) string { return "grad-" + b.String() }

func (Gradient) RenderDefs(buf *bytes.Buffer, sc scene.Scene) {
	buf.WriteString("  <defs>\n")
	for _, b := range sentiment.Bands {
		sw := sc.Palette.Swatch(b)
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+"\n", GradientID(b))
		for i, stop := range sw.Stops {
			fmt.Fprintf(buf, `      <stop offset="%d%%" stop-color="%s"/>`+"\n", i*50, stop)
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (Gradient) RenderRibbon(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <path id="%s" class="ribbon %s" data-nodes="%s" d="%s" fill="url(#%s)" fill-opacity="%.3f" stroke="%s" stroke-opacity="0.3" stroke-width="0.5"/>`+"\n",
		s.ID, s.Band, DataNodes(s), s.Path, GradientID(s.Band), s.Opacity, s.Fill)
}

func (Gradient) RenderArc(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <path id="%s" class="arc %s" data-nodes="%s" d="%s" fill="none" stroke="url(#%s)" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linecap="butt"/>`+"\n",
		s.ID, s.Band, DataNodes(s), s.Path, GradientID(s.Band), s.Opacity, s.StrokeWidth)
}

func (Gradient) RenderLabel(buf *bytes.Buffer, s scene.Shape) {
	WriteLabel(buf, s, simpleFont, "#222")
}
