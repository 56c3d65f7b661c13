package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/render/chord/path"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/styles"
)

const chordInteractionCSS = `
    .ribbon, .arc { transition: opacity 0.2s ease; }
    svg.focus .ribbon:not(.highlight), svg.focus .arc:not(.highlight) { opacity: 0.15; }
    .node-label { pointer-events: none; }
    .node-label.highlight { font-weight: bold; }`

const chordInteractionJS = `
    const root = document.currentScript.closest('svg');
    function nodesOf(el) { return (el.dataset.nodes || '').split(' '); }
    function highlight(node) {
      root.classList.add('focus');
      root.querySelectorAll('[data-nodes]').forEach(el => el.classList.toggle('highlight', nodesOf(el).includes(node)));
    }
    function clearHighlight() {
      root.classList.remove('focus');
      root.querySelectorAll('.highlight').forEach(el => el.classList.remove('highlight'));
    }
    root.querySelectorAll('.arc').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(nodesOf(el)[0]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	interactive bool
	background  string
	title       string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithoutInteraction() SVGOption      { return func(r *svgRenderer) { r.interactive = false } }
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	vb := viewBox(sc)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vb.MinX, vb.MinY, vb.Width(), vb.Height(), vb.Width(), vb.Height())
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			vb.MinX, vb.MinY, vb.Width(), vb.Height(), styles.EscapeXML(r.background))
	}

	r.style.RenderDefs(&buf, sc)
	renderContent(&buf, r.style, sc)
	if r.interactive {
		renderChordInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// viewBox is the origin-centered frame, grown to fit anything drawn
// outside it such as long labels.
func viewBox(sc scene.Scene) path.Rect {
	w, h := max(1, sc.Width), max(1, sc.Height)
	frame := path.Rect{MinX: -w / 2, MinY: -h / 2, MaxX: w / 2, MaxY: h / 2}
	if len(sc.Shapes) == 0 {
		return frame
	}
	return frame.Union(sc.Bounds())
}

func renderContent(buf *bytes.Buffer, style styles.Style, sc scene.Scene) {
	for _, s := range sc.Shapes {
		switch s.Kind {
		case scene.KindRibbon:
			style.RenderRibbon(buf, s)
		case scene.KindArc:
			style.RenderArc(buf, s)
		}
	}
	for _, s := range sc.Shapes {
		if s.Kind == scene.KindArc {
			style.RenderLabel(buf, s)
		}
	}
}

func renderChordInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", chordInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", chordInteractionJS)
}
