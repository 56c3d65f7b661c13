package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
)

func TestEffectiveNodeCount(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want int
	}{
		{"explicit", Dataset{NodeCount: 5, Words: []Word{{Node: 9}}}, 5},
		{"inferred", Dataset{Words: []Word{{Node: 0}, {Node: 3}}}, 4},
		{"negative only", Dataset{Words: []Word{{Node: -2}}}, 1},
		{"empty", Dataset{}, 1},
		{"negative count", Dataset{NodeCount: -3, Words: []Word{{Node: 1}}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ds.EffectiveNodeCount(); got != tt.want {
				t.Errorf("EffectiveNodeCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightedWordsRoundTrip(t *testing.T) {
	ds := Dataset{NodeCount: 3, Words: []Word{{Text: "a", Value: 1.5, Node: 2}, {Text: "b", Value: -9, Node: -1}}}
	back := FromWeightedWords(ds.NodeCount, ds.WeightedWords())
	if diff := cmp.Diff(ds, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromLayout(t *testing.T) {
	l := layout.Build(3, []layout.WeightedWord{
		{Value: 4, NodeIndex: 0},
		{Value: -2, NodeIndex: 1},
	})
	s := FromLayout(l)

	if s.VizType != VizTypeChord {
		t.Errorf("VizType = %q, want chord", s.VizType)
	}
	if len(s.Arcs) != 3 || s.NodeCount != 3 {
		t.Fatalf("arcs = %d, node_count = %d", len(s.Arcs), s.NodeCount)
	}
	wantBands := []string{"positive", "negative", "neutral"}
	for i, a := range s.Arcs {
		if a.Band != wantBands[i] {
			t.Errorf("arc %d band = %s, want %s", i, a.Band, wantBands[i])
		}
	}
	if len(s.Ribbons) != len(l.Ribbons) {
		t.Errorf("ribbons = %d, want %d", len(s.Ribbons), len(l.Ribbons))
	}
}

func TestToLayoutRoundTrip(t *testing.T) {
	l := layout.Build(4, []layout.WeightedWord{
		{Value: 1, NodeIndex: 0},
		{Value: -3, NodeIndex: 2},
	})
	back, err := ToLayout(FromLayout(l))
	if err != nil {
		t.Fatalf("ToLayout() error: %v", err)
	}
	if diff := cmp.Diff(l, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToLayoutValidation(t *testing.T) {
	valid := FromLayout(layout.Build(3, []layout.WeightedWord{{Value: 1}}))

	tests := []struct {
		name   string
		mutate func(*Layout)
		errSub string
	}{
		{"no arcs", func(l *Layout) { l.Arcs = nil }, "must contain arcs"},
		{"count mismatch", func(l *Layout) { l.NodeCount = 7 }, "does not match"},
		{"arc order", func(l *Layout) { l.Arcs[0].Index = 2 }, "has index"},
		{"ribbon out of range", func(l *Layout) { l.Ribbons = append(l.Ribbons, Ribbon{I: 1, J: 3}) }, "out of range"},
		{"ribbon reversed", func(l *Layout) { l.Ribbons = append(l.Ribbons, Ribbon{I: 2, J: 1}) }, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			l.Arcs = append([]Arc(nil), valid.Arcs...)
			l.Ribbons = append([]Ribbon(nil), valid.Ribbons...)
			tt.mutate(&l)
			_, err := ToLayout(l)
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("ToLayout() error = %v, want containing %q", err, tt.errSub)
			}
		})
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, l Layout)
	}{
		{
			name: "defaults to chord",
			data: `{"arcs":[{"index":0,"start_angle":0,"end_angle":6}]}`,
			check: func(t *testing.T, l Layout) {
				if !l.IsChord() {
					t.Errorf("VizType = %q, want chord", l.VizType)
				}
			},
		},
		{
			name: "nodelink",
			data: `{"viz_type":"nodelink","dot":"graph G {}","engine":"circo"}`,
			check: func(t *testing.T, l Layout) {
				if !l.IsNodelink() || l.Engine != "circo" {
					t.Errorf("layout = %+v", l)
				}
			},
		},
		{name: "chord without arcs", data: `{"viz_type":"chord"}`, wantErr: true},
		{name: "nodelink without dot", data: `{"viz_type":"nodelink"}`, wantErr: true},
		{name: "unknown type", data: `{"viz_type":"tower","arcs":[{"index":0}]}`, wantErr: true},
		{name: "malformed", data: `{"arcs":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, l)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	want := FromLayout(layout.Build(2, []layout.WeightedWord{{Text: "x", Value: 2}}))
	want.Width, want.Height, want.Style = 800, 600, StyleGradient
	want.Labels = []string{"x", ""}

	if err := WriteLayoutFile(want, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadLayoutFile() on missing file should fail")
	}
}

func TestReadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	data := `{"node_count": 2, "words": [{"text": "calm", "value": 1.5, "node": 1}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile() error: %v", err)
	}
	want := Dataset{NodeCount: 2, Words: []Word{{Text: "calm", Value: 1.5, Node: 1}}}
	if diff := cmp.Diff(want, ds); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}
