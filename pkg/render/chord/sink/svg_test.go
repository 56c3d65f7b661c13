package sink

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/render"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
	"github.com/matzehuels/chordwheel/pkg/render/chord/styles"
)

func testScene(labels bool) scene.Scene {
	words := []layout.WeightedWord{
		{Text: "hope", Value: 3, NodeIndex: 0},
		{Text: "fear", Value: -4, NodeIndex: 2},
	}
	var opts []scene.Option
	if labels {
		opts = append(opts, scene.WithLabels(scene.Labels(4, words)))
	}
	return scene.Build(layout.Build(4, words), scene.DefaultGeometry(640, 480), sentiment.DefaultPalette(), opts...)
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testScene(true)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-320.0 -240.0 640.0 480.0"`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	for _, want := range []string{`class="ribbon`, `class="arc`, `class="node-label"`, "<script", "<style>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderSVGDrawOrder(t *testing.T) {
	svg := string(RenderSVG(testScene(true)))

	lastRibbon := strings.LastIndex(svg, `class="ribbon`)
	firstArc := strings.Index(svg, `class="arc`)
	lastArc := strings.LastIndex(svg, `class="arc`)
	firstLabel := strings.Index(svg, `class="node-label"`)
	if lastRibbon < 0 || firstArc < 0 || lastRibbon > firstArc {
		t.Errorf("ribbons must precede arcs (last ribbon %d, first arc %d)", lastRibbon, firstArc)
	}
	if firstLabel < lastArc {
		t.Errorf("labels must follow arcs (first label %d, last arc %d)", firstLabel, lastArc)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(false),
		WithoutInteraction(),
		WithBackground("#fafafa"),
		WithTitle("mood <wheel>"),
		WithStyle(styles.Gradient{}),
	))

	if strings.Contains(svg, "<script") {
		t.Error("interaction script present despite WithoutInteraction")
	}
	if !strings.Contains(svg, `fill="#fafafa"`) {
		t.Error("background missing")
	}
	if !strings.Contains(svg, "<title>mood &lt;wheel&gt;</title>") {
		t.Error("escaped title missing")
	}
	if !strings.Contains(svg, "<linearGradient") {
		t.Error("gradient defs missing")
	}
	if strings.Contains(svg, `class="node-label"`) {
		t.Error("labels rendered without WithLabels")
	}
}

func TestRenderSVGEmptyScene(t *testing.T) {
	svg := string(RenderSVG(scene.Scene{}))
	if !strings.Contains(svg, `viewBox="-0.5 -0.5 1.0 1.0"`) {
		t.Errorf("empty scene viewBox wrong: %s", svg)
	}
}

func TestViewBoxGrowsForLabels(t *testing.T) {
	sc := testScene(true)
	sc.Width, sc.Height = 100, 100 // labels land well outside a tiny frame
	vb := viewBox(sc)
	if vb.Width() <= 100 || vb.Height() <= 100 {
		t.Errorf("viewBox %+v did not grow to fit content", vb)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene(true), WithJSONStyle(styles.NameHanddrawn), WithJSONSeed(9))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Style  string  `json:"style"`
		Seed   int64   `json:"seed"`
		Width  float64 `json:"width"`
		Shapes []struct {
			Kind string `json:"kind"`
			ID   string `json:"id"`
			D    string `json:"d"`
			Band string `json:"band"`
		} `json:"shapes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Style != "handdrawn" || out.Seed != 9 || out.Width != 640 {
		t.Errorf("header = %+v", out)
	}
	if len(out.Shapes) == 0 || !strings.HasPrefix(out.Shapes[0].D, "M ") {
		t.Fatalf("shapes not serialized with path data: %+v", out.Shapes)
	}
	if out.Shapes[len(out.Shapes)-1].Kind != "arc" {
		t.Errorf("last shape kind = %s, want arc", out.Shapes[len(out.Shapes)-1].Kind)
	}
	for _, s := range out.Shapes {
		if s.Band != "positive" && s.Band != "neutral" && s.Band != "negative" {
			t.Errorf("%s: band %q not serialized by name", s.ID, s.Band)
		}
	}
}

func TestStyleByName(t *testing.T) {
	for _, name := range append([]string{""}, StyleNames...) {
		if _, err := StyleByName(name, 1); err != nil {
			t.Errorf("StyleByName(%q) error: %v", name, err)
		}
	}
	if _, err := StyleByName("neon", 1); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("StyleByName(neon) error = %v, want %s", err, errors.ErrCodeInvalidStyle)
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.ConverterAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := RenderPNG(context.Background(), testScene(true), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if len(out) < 8 || string(out[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.ConverterAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := RenderPDF(context.Background(), testScene(true))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF-") {
		t.Error("output is not a PDF")
	}
}
