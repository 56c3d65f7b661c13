package graph_test

import (
	"fmt"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
)

func ExampleMarshalDataset() {
	ds := graph.Dataset{
		NodeCount: 2,
		Words:     []graph.Word{{Text: "hope", Value: 3, Node: 0}},
	}

	data, err := graph.MarshalDataset(ds)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(string(data))
	// Output:
	// {
	//   "node_count": 2,
	//   "words": [
	//     {
	//       "text": "hope",
	//       "value": 3,
	//       "node": 0
	//     }
	//   ]
	// }
}

func ExampleFromLayout() {
	l := layout.Build(2, []layout.WeightedWord{{Text: "joy", Value: 5, NodeIndex: 0}})
	s := graph.FromLayout(l)

	fmt.Println(s.VizType, len(s.Arcs), "arcs")
	for _, r := range s.Ribbons {
		fmt.Printf("%d-%d %s\n", r.I, r.J, r.Band)
	}
	// Output:
	// chord 2 arcs
	// 0-1 positive
}
