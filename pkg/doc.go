// Package pkg provides the core libraries for Chordwheel sentiment chord diagrams.
//
// # Overview
//
// Chordwheel turns weighted words into a radial chord diagram. Every node
// (a person, a document, a time slot) gets an arc sized by the magnitude of
// its words, and every pair of nodes that carries words is joined by a ribbon
// colored by the average sentiment of those words. The pkg directory is
// organized into these areas:
//
//  1. [render] - Domain logic (chord layout, sentiment bands, scene geometry, drawing)
//  2. [graph] - Serialization types for datasets and layouts
//  3. [io] - Dataset import and export (JSON, YAML, TOML, CSV)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [config], [observability], [server] - Infrastructure
//
// # Architecture
//
// The typical data flow through Chordwheel:
//
//	Word dataset (JSON/YAML/TOML/CSV)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [render/chord/layout] package (arcs, flows, ribbons)
//	         ↓
//	    [render/chord/scene] package (geometry, colors, labels)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Lay out a handful of words and render them to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chordwheel/pkg/graph"
//	    "github.com/matzehuels/chordwheel/pkg/pipeline"
//	)
//
//	ds := graph.Dataset{Words: []graph.Word{
//	    {Text: "hope", Value: 4, Node: 0},
//	    {Text: "dread", Value: -3, Node: 1},
//	}}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), ds, pipeline.Options{})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [render/chord/layout] - The pure layout engine: node weights, arc angles,
// pairwise flows and the sentiment of each ribbon.
//
// [render/chord/sentiment] - Sentiment bands and the color palette.
//
// [render/chord/scene] - Screen geometry: arc and ribbon paths, label
// positions and the draw order consumed by every sink.
//
// [render/chord/sink] - SVG output in simple, gradient and handdrawn styles,
// plus the scene JSON document.
//
// [render/nodelink] - Graphviz rendering of the same flows as a node-link
// diagram.
//
// [render] - SVG to PNG/PDF conversion via librsvg.
//
// [cache] - Layout and artifact cache with file, memory, Redis and MongoDB
// backends.
//
// [server] - HTTP service exposing the pipeline.
package pkg
