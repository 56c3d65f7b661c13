package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeChord    = "chord"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple    = "simple"
	StyleGradient  = "gradient"
	StyleHanddrawn = "handdrawn"
)

// =============================================================================
// Dataset - Engine Input
// =============================================================================

// Word is one weighted word. Values outside [-5, 5] are accepted here and
// clamped by the layout engine.
type Word struct {
	Text  string  `json:"text" yaml:"text" toml:"text" bson:"text" validate:"max=256"`
	Value float64 `json:"value" yaml:"value" toml:"value" bson:"value"`
	Node  int     `json:"node" yaml:"node" toml:"node" bson:"node"`
}

// Dataset is the canonical input document.
type Dataset struct {
	NodeCount int    `json:"node_count,omitempty" yaml:"node_count,omitempty" toml:"node_count,omitempty" bson:"node_count,omitempty" validate:"gte=0"`
	Words     []Word `json:"words" yaml:"words" toml:"words" bson:"words" validate:"dive"`
}

// EffectiveNodeCount returns NodeCount when set, otherwise one more than
// the highest non-negative node index, and never less than 1.
func (d Dataset) EffectiveNodeCount() int {
	if d.NodeCount > 0 {
		return d.NodeCount
	}
	n := 1
	for _, w := range d.Words {
		n = max(n, w.Node+1)
	}
	return n
}

// WeightedWords converts the words to engine input.
func (d Dataset) WeightedWords() []layout.WeightedWord {
	out := make([]layout.WeightedWord, len(d.Words))
	for i, w := range d.Words {
		out[i] = layout.WeightedWord{Text: w.Text, Value: w.Value, NodeIndex: w.Node}
	}
	return out
}

// FromWeightedWords builds a dataset from engine input.
func FromWeightedWords(nodeCount int, words []layout.WeightedWord) Dataset {
	out := Dataset{NodeCount: nodeCount, Words: make([]Word, len(words))}
	for i, w := range words {
		out.Words[i] = Word{Text: w.Text, Value: w.Value, Node: w.NodeIndex}
	}
	return out
}

// MarshalDataset serializes a dataset to pretty-printed JSON bytes.
func MarshalDataset(d Dataset) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ReadDataset decodes a JSON dataset from an io.Reader.
func ReadDataset(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadDatasetFile reads a JSON dataset from a file.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}
