package sink

import (
	"encoding/json"

	"github.com/matzehuels/chordwheel/pkg/render/chord/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	seed   int64
	indent bool
}

// WithJSONStyle records the style name in the JSON output so clients can
// reproduce the look.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONSeed records the hand-drawn seed.
func WithJSONSeed(seed int64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Style string `json:"style,omitempty"`
	Seed  int64  `json:"seed,omitempty"`
	scene.Scene
}

// RenderJSON serializes the resolved scene with paths as SVG path data.
func RenderJSON(sc scene.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Style: r.style, Seed: r.seed, Scene: sc}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
