// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dtx2tex/internal/dtx"
)

func sampleResult() dtx.Result {
	return dtx.Result{
		Input:    "pkg.dtx",
		Output:   "pkg.tex",
		Anchors:  dtx.Anchors{DocumentClass: 4, BeginDocument: 6, DocInput: 7, EndDocument: 8, EndInput: 40},
		Openers:  []int{0, 20},
		Closers:  []int{10, 22},
		Pairs:    []dtx.Pair{{IfFalse: 0, Fi: 10}, {IfFalse: 20, Fi: 22}},
		LinesIn:  41,
		LinesOut: 25,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromResult(t *testing.T) {
	doc := FromResult(sampleResult())
	assert.Equal(t, 5, doc.Anchors.DocumentClass)
	assert.Equal(t, 41, doc.Anchors.EndInput)
	assert.Equal(t, []Block{{IfFalse: 1, Fi: 11}, {IfFalse: 21, Fi: 23}}, doc.Blocks)
}

func TestWriteFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "pkg.yaml")
	require.NoError(t, WriteFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, FromResult(sampleResult()), doc)
	assert.Contains(t, string(data), "documentclass: 5")
}

func TestWriteFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.json")
	require.NoError(t, WriteFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "pkg.tex", doc.Output)
	assert.Len(t, doc.Blocks, 2)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, map[string]int{"pairs": 2}))
	assert.JSONEq(t, `{"pairs": 2}`, buf.String())
}
