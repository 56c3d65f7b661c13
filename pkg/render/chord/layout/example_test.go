package layout_test

import (
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
)

func ExampleBuild() {
	words := []layout.WeightedWord{
		{Text: "grief", Value: -5, NodeIndex: 0},
		{Text: "bliss", Value: 5, NodeIndex: 1},
	}

	l := layout.Build(3, words)
	for _, a := range l.Arcs {
		fmt.Printf("node %d: %.3f..%.3f (%d words)\n", a.Index, a.StartAngle, a.EndAngle, a.Count)
	}
	r, _ := l.Ribbon(0, 1)
	fmt.Printf("ribbon 0-1: flow %.3f avg %.1f\n", r.Flow, r.AvgValue)
	// Output:
	// node 0: 0.000..3.040 (1 words)
	// node 1: 3.055..6.096 (1 words)
	// node 2: 6.111..6.268 (0 words)
	// ribbon 0-1: flow 4.718 avg 0.0
}
