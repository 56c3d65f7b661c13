package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/graph"
)

// WriteWords encodes a dataset in the given format and writes it to w.
// CSV output drops the node count; it is inferred again on import.
func WriteWords(ds graph.Dataset, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(ds); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatCSV:
		return writeCSV(ds, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format: %q", format)
	}
	return nil
}

// ExportWords writes a dataset file, picking the format from its extension.
func ExportWords(ds graph.Dataset, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteWords(ds, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(ds graph.Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"text", "value", "node"}); err != nil {
		return err
	}
	for _, word := range ds.Words {
		rec := []string{
			word.Text,
			strconv.FormatFloat(word.Value, 'g', -1, 64),
			strconv.Itoa(word.Node),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
