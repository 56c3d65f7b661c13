package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/chordwheel/pkg/errors"
)

// Format is a dataset file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
)

// Formats lists all supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatCSV}

// ParseFormat maps a format name (case-insensitive, "yml" accepted) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format: %q (valid: %v)", s, Formats)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer dataset format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}
