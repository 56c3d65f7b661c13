package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
)

const (
	labelFontSize  = 13.0
	labelMaxRunes  = 18
	labelBaseShift = 0.35 // em, centers text vertically on its anchor
)

// EscapeXML escapes text for use in SVG content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TruncateLabel shortens labels that would collide with neighbors.
func TruncateLabel(label string) string {
	if utf8.RuneCountInString(label) <= labelMaxRunes {
		return label
	}
	r := []rune(label)
	return string(r[:labelMaxRunes-2]) + ".."
}

// DataNodes formats the node pair for the data-nodes attribute.
func DataNodes(s scene.Shape) string {
	if s.Nodes[0] == s.Nodes[1] {
		return fmt.Sprintf("%d", s.Nodes[0])
	}
	return fmt.Sprintf("%d %d", s.Nodes[0], s.Nodes[1])
}

// WriteLabel writes a <text> element for s using the given font family.
// Shapes without a label produce no output.
func WriteLabel(buf *bytes.Buffer, s scene.Shape, fontFamily, fill string) {
	if s.Label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="node-label" data-nodes="%s" x="%.2f" y="%.2f" dy="%.2fem" text-anchor="%s" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		DataNodes(s), s.LabelAt.X, s.LabelAt.Y, labelBaseShift, s.LabelAnchor, fontFamily, labelFontSize, fill,
		EscapeXML(TruncateLabel(s.Label)))
}
