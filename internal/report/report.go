// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders conversion results and history records as YAML or
// JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dtx2tex/internal/dtx"
	"github.com/pdiddy/dtx2tex/pkg/types"
)

// Format selects the report encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name. An empty name is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml or json", s)
	}
}

// FormatForPath picks JSON for .json paths and YAML otherwise.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Block is a conditional-hiding block with 1-indexed line numbers.
type Block struct {
	IfFalse int `json:"iffalse" yaml:"iffalse"`
	Fi      int `json:"fi" yaml:"fi"`
}

// Document is the report of a single conversion. Line numbers are 1-indexed.
type Document struct {
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output" yaml:"output"`
	Anchors  types.Anchors `json:"anchors" yaml:"anchors"`
	Blocks   []Block       `json:"blocks" yaml:"blocks"`
	LinesIn  int           `json:"lines_in" yaml:"lines_in"`
	LinesOut int           `json:"lines_out" yaml:"lines_out"`
}

// FromResult builds a Document from a conversion result.
func FromResult(res dtx.Result) Document {
	blocks := make([]Block, len(res.Pairs))
	for i, p := range res.Pairs {
		blocks[i] = Block{IfFalse: p.IfFalse + 1, Fi: p.Fi + 1}
	}
	return Document{
		Input:    res.Input,
		Output:   res.Output,
		Anchors:  res.Anchors.Lines(),
		Blocks:   blocks,
		LinesIn:  res.LinesIn,
		LinesOut: res.LinesOut,
	}
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	}
	return nil
}

// WriteFile writes the report for res to path, creating parent directories.
// The format follows the path extension.
func WriteFile(path string, res dtx.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := Encode(f, FormatForPath(path), FromResult(res)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
