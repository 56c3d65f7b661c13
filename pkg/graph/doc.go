// Package graph provides serialization types for word datasets and chord
// layouts.
//
// This package defines the canonical wire format for chordwheel's data,
// used for JSON files, API requests and responses, caching, and
// cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Dataset], [Layout]: Serialization types (this package)
//   - pkg/render/chord/layout.WeightedWord: Engine input
//   - pkg/render/chord/layout.Layout: Engine output
//
// Use [Dataset.WeightedWords] and [FromLayout]/[ToLayout] to convert
// between them.
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeChord      // "chord"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//	graph.StyleGradient     // "gradient"
//	graph.StyleHanddrawn    // "handdrawn"
//
// # Dataset Serialization
//
// A dataset is a node count plus a flat word list:
//
//	{
//	  "node_count": 3,
//	  "words": [
//	    {"text": "hope", "value": 3, "node": 0},
//	    {"text": "dread", "value": -4, "node": 2}
//	  ]
//	}
//
// When node_count is omitted it is inferred from the highest node index.
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	layout, _ := graph.UnmarshalLayout(data)
//	if layout.IsChord() {
//	    // Use layout.Arcs and layout.Ribbons
//	} else {
//	    // Use layout.DOT for Graphviz rendering
//	}
//
// Both carry the arcs and ribbons, so a nodelink layout can be redrawn as a
// chord diagram and vice versa.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
