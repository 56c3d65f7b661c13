// Package io imports and exports word datasets in several file formats.
//
// # Overview
//
// A dataset is a node count plus a list of weighted words (see
// [graph.Dataset]). Word lists come from many places, such as hand-edited
// config files, spreadsheets and other tools, so this package reads and
// writes the same document in four formats:
//
//   - JSON (.json): the canonical format, identical to the API body
//   - YAML (.yaml, .yml)
//   - TOML (.toml)
//   - CSV (.csv): one word per row with a text,value,node header
//
// # JSON, YAML and TOML
//
// All three share one structure:
//
//	{
//	  "node_count": 3,
//	  "words": [
//	    {"text": "hope", "value": 3, "node": 0},
//	    {"text": "dread", "value": -4, "node": 2}
//	  ]
//	}
//
// In TOML the words become an array of tables:
//
//	node_count = 3
//
//	[[words]]
//	text = "hope"
//	value = 3.0
//	node = 0
//
// # CSV
//
// CSV files need a header row. Columns are matched by name and may appear
// in any order; "node" is optional and defaults to 0. The node count is
// always inferred from the highest node index:
//
//	text,value,node
//	hope,3,0
//	dread,-4,2
//
// # Validation
//
// Word text is checked with [errors.ValidateWordText]. Values must be finite
// but are otherwise passed through unchanged; the layout engine clamps them
// to [-5, 5]. Malformed documents produce errors with code
// [errors.ErrCodeInvalidInput], unknown formats [errors.ErrCodeInvalidFormat].
//
// # Import
//
//	ds, err := io.ImportWords("words.yaml")
//
// # Export
//
//	err := io.ExportWords(ds, "words.csv")
package io
