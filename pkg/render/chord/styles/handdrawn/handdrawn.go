// Package handdrawn provides a sketchy chord style.
//
// Ribbons and arcs are pushed through an SVG turbulence filter so their
// edges wobble like ink on paper, arcs get a dashed pencil outline, and
// labels use a handwriting font stack. The filter is seeded so the same
// seed always produces the same wobble.
//
//	style := handdrawn.New(42)
//	svg := sink.RenderSVG(sc, sink.WithStyle(style))
package handdrawn

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/styles"
)

const (
	fontFamily = `'xkcd Script', 'Comic Neue', 'Comic Sans MS', cursive`
	inkColor   = "#2b2b2b"
	filterID   = "wobble"
)

// HandDrawn renders shapes with a seeded wobble filter.
type HandDrawn struct {
	seed int64
}

// New returns a hand-drawn style with the given seed.
func New(seed int64) *HandDrawn {
	return &HandDrawn{seed: seed}
}

// Seed returns the turbulence seed.
func (h *HandDrawn) Seed() int64 { return h.seed }

func (h *HandDrawn) RenderDefs(buf *bytes.Buffer, _ scene.Scene) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <filter id="%s" x="-5%%" y="-5%%" width="110%%" height="110%%">`+"\n", filterID)
	fmt.Fprintf(buf, `      <feTurbulence type="fractalNoise" baseFrequency="0.02" numOctaves="3" seed="%d" result="noise"/>`+"\n", h.seed%1_000_000)
	buf.WriteString(`      <feDisplacementMap in="SourceGraphic" in2="noise" scale="3" xChannelSelector="R" yChannelSelector="G"/>` + "\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString("  </defs>\n")
}

func (h *HandDrawn) RenderRibbon(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <path id="%s" class="ribbon %s" data-nodes="%s" d="%s" fill="%s" fill-opacity="%.3f" stroke="%s" stroke-width="1" stroke-linejoin="round" filter="url(#%s)"/>`+"\n",
		s.ID, s.Band, styles.DataNodes(s), s.Path, s.Fill, s.Opacity, inkColor, filterID)
}

func (h *HandDrawn) RenderArc(buf *bytes.Buffer, s scene.Shape) {
	fmt.Fprintf(buf, `  <g id="%s" class="arc %s" data-nodes="%s" filter="url(#%s)">`+"\n",
		s.ID, s.Band, styles.DataNodes(s), filterID)
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
		s.Path, s.Fill, s.Opacity, s.StrokeWidth)
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="1.2" stroke-dasharray="6 3"/>`+"\n",
		s.Path, inkColor)
	buf.WriteString("  </g>\n")
}

func (h *HandDrawn) RenderLabel(buf *bytes.Buffer, s scene.Shape) {
	styles.WriteLabel(buf, s, fontFamily, inkColor)
}
