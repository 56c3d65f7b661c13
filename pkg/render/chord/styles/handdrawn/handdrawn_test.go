package handdrawn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/path"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

func TestNew(t *testing.T) {
	h := New(42)
	if h == nil {
		t.Fatal("New() returned nil")
	}
	if h.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", h.Seed())
	}
}

func TestHandDrawn_RenderDefs(t *testing.T) {
	var buf bytes.Buffer
	New(7).RenderDefs(&buf, scene.Scene{})
	output := buf.String()

	if !strings.Contains(output, "<defs>") {
		t.Error("RenderDefs() missing <defs> tag")
	}
	if !strings.Contains(output, `seed="7"`) {
		t.Errorf("RenderDefs() missing seeded turbulence: %s", output)
	}
}

func TestHandDrawn_DeterministicBySeed(t *testing.T) {
	var a, b, c bytes.Buffer
	New(1).RenderDefs(&a, scene.Scene{})
	New(1).RenderDefs(&b, scene.Scene{})
	New(2).RenderDefs(&c, scene.Scene{})
	if a.String() != b.String() {
		t.Error("same seed produced different defs")
	}
	if a.String() == c.String() {
		t.Error("different seeds produced identical defs")
	}
}

func TestHandDrawn_RenderArc(t *testing.T) {
	s := scene.Shape{
		Kind:        scene.KindArc,
		ID:          "arc-3",
		Nodes:       [2]int{3, 3},
		Path:        path.Arc(100, 0, 1),
		Band:        sentiment.Negative,
		Fill:        sentiment.DefaultNegative,
		Opacity:     1,
		StrokeWidth: 8,
	}

	var buf bytes.Buffer
	New(42).RenderArc(&buf, s)
	output := buf.String()

	for _, want := range []string{`id="arc-3"`, `class="arc negative"`, `filter="url(#wobble)"`, `stroke-dasharray`} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderArc() missing %q: %s", want, output)
		}
	}
}

func TestHandDrawn_RenderLabel(t *testing.T) {
	words := []layout.WeightedWord{{Text: "calm", Value: 1}}
	sc := scene.Build(layout.Build(1, words), scene.DefaultGeometry(300, 300), sentiment.DefaultPalette(),
		scene.WithLabels(scene.Labels(1, words)))

	var buf bytes.Buffer
	New(42).RenderLabel(&buf, sc.Arcs()[0])
	output := buf.String()

	if !strings.Contains(output, "xkcd Script") {
		t.Errorf("RenderLabel() missing font family: %s", output)
	}
	if !strings.Contains(output, ">calm</text>") {
		t.Errorf("RenderLabel() missing text: %s", output)
	}
}
