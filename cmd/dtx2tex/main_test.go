// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dtx2tex/pkg/types"
)

const driverDTX = `% \iffalse
%<*driver>
\documentclass{ltxdoc}
\begin{document}
\DocInput{demo.dtx}
\end{document}
%</driver>
% \fi
% \section{Usage}
%    \begin{macrocode}
%<*package>
\def\demo{1}
%</package>
%    \end{macrocode}
\endinput
`

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

// convertArgs resets the sticky convert flags so tests stay independent.
func convertArgs(dbPath string, extra ...string) []string {
	args := []string{"convert", "--history=false", "--report=", "--verbose=false", "--history-db", dbPath}
	return append(args, extra...)
}

func writeDTX(t *testing.T, name, content string) (base, dir string) {
	t.Helper()
	dir = t.TempDir()
	base = filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(base+".dtx", []byte(content), 0o644))
	return base, dir
}

func TestConvertCommand(t *testing.T) {
	base, dir := writeDTX(t, "demo", driverDTX)

	out, err := execute(t, convertArgs(filepath.Join(dir, "h.db"), base)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Output file: "+base+".tex")

	data, err := os.ReadFile(base + ".tex")
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{ltxdoc}
\begin{document}
\section{Usage}
\begin{verbatim}
\def\demo{1}
\end{verbatim}
\end{document}
`, string(data))
	assert.NoFileExists(t, filepath.Join(dir, "h.db"), "history is opt-in")
}

func TestConvertCommand_OutputAndVerbose(t *testing.T) {
	base, dir := writeDTX(t, "demo", driverDTX)
	target := filepath.Join(dir, "rendered")

	out, err := execute(t, convertArgs(filepath.Join(dir, "h.db"), "--verbose", base, target)...)
	require.NoError(t, err)
	assert.Contains(t, out, `Detecting: \documentclass at line 3`)
	assert.Contains(t, out, `Detecting: \iffalse total number 1, at lines [1]`)
	assert.Contains(t, out, "Process completed.")
	assert.FileExists(t, target+".tex")
}

func TestConvertCommand_Report(t *testing.T) {
	base, dir := writeDTX(t, "demo", driverDTX)
	reportPath := filepath.Join(dir, "demo.json")

	args := convertArgs(filepath.Join(dir, "h.db"), base)
	args = append(args, "--report", reportPath)
	_, err := execute(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var doc struct {
		Anchors types.Anchors `json:"anchors"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 3, doc.Anchors.DocumentClass)
	assert.Equal(t, 15, doc.Anchors.EndInput)
}

func TestConvertCommand_MissingAnchor(t *testing.T) {
	base, dir := writeDTX(t, "broken", "% just prose\n\\endinput\n")

	_, err := execute(t, convertArgs(filepath.Join(dir, "h.db"), base)...)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "missing_anchor: "), err.Error())
	assert.NoFileExists(t, base+".tex")
}

func TestHistoryCommand(t *testing.T) {
	base, dir := writeDTX(t, "demo", driverDTX)
	db := filepath.Join(dir, "h.db")

	args := convertArgs(db, base)
	args = append(args, "--history")
	_, err := execute(t, args...)
	require.NoError(t, err)

	out, err := execute(t, "history", "--history-db", db, "--format", "json", "--limit", "5")
	require.NoError(t, err)

	var runs []types.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, base+".dtx", runs[0].Input)
	assert.Equal(t, types.RunConverted, runs[0].Status)
	assert.Equal(t, 1, runs[0].Pairs)

	out, err = execute(t, "history", "--history-db", db, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "1 runs")
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := execute(t, "history", "--history-db", db, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "No conversions recorded.")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dtx2tex dev\n", out)
}
