package io

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/graph"
)

// ReadWords decodes a dataset in the given format from r and validates it.
// ReadWords does not close r.
func ReadWords(r io.Reader, format Format) (graph.Dataset, error) {
	var (
		ds  graph.Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = graph.ReadDataset(r)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&ds)
		if stderrors.Is(err, io.EOF) {
			err = fmt.Errorf("empty document")
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&ds)
	case FormatCSV:
		ds, err = readCSV(r)
	default:
		return graph.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format: %q", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return graph.Dataset{}, err
		}
		return graph.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s dataset", format)
	}
	if err := Validate(ds); err != nil {
		return graph.Dataset{}, err
	}
	return ds, nil
}

// ImportWords reads a dataset file, picking the format from its extension.
func ImportWords(path string) (graph.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return graph.Dataset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return graph.Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s not found", path)
		}
		return graph.Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWords(f, format)
}

// Validate checks every word in the dataset.
func Validate(ds graph.Dataset) error {
	if ds.NodeCount < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node_count cannot be negative: %d", ds.NodeCount)
	}
	for i, w := range ds.Words {
		if err := errors.ValidateWordText(w.Text); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "word %d", i)
		}
		if math.IsNaN(w.Value) || math.IsInf(w.Value, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "word %d (%q): value must be finite", i, w.Text)
		}
	}
	return nil
}

func readCSV(r io.Reader) (graph.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return graph.Dataset{}, fmt.Errorf("missing header row")
	}
	if err != nil {
		return graph.Dataset{}, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	textCol, okText := cols["text"]
	valueCol, okValue := cols["value"]
	nodeCol, okNode := cols["node"]
	if !okText || !okValue {
		return graph.Dataset{}, fmt.Errorf("header must name text and value columns, got %v", header)
	}

	ds := graph.Dataset{Words: []graph.Word{}}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return graph.Dataset{}, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		w, err := parseRecord(rec, textCol, valueCol, nodeCol, okNode)
		if err != nil {
			return graph.Dataset{}, fmt.Errorf("line %d: %w", line, err)
		}
		ds.Words = append(ds.Words, w)
	}
	return ds, nil
}

func parseRecord(rec []string, textCol, valueCol, nodeCol int, hasNode bool) (graph.Word, error) {
	field := func(i int) (string, error) {
		if i >= len(rec) {
			return "", fmt.Errorf("expected at least %d fields, got %d", i+1, len(rec))
		}
		return strings.TrimSpace(rec[i]), nil
	}

	text, err := field(textCol)
	if err != nil {
		return graph.Word{}, err
	}
	raw, err := field(valueCol)
	if err != nil {
		return graph.Word{}, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return graph.Word{}, fmt.Errorf("value %q: %w", raw, err)
	}
	w := graph.Word{Text: text, Value: value}
	if hasNode {
		raw, err := field(nodeCol)
		if err != nil {
			return graph.Word{}, err
		}
		if raw != "" {
			if w.Node, err = strconv.Atoi(raw); err != nil {
				return graph.Word{}, fmt.Errorf("node %q: %w", raw, err)
			}
		}
	}
	return w, nil
}
