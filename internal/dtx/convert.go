// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dtx extracts the documentation body of a LaTeX documented source
// (.dtx) into a plain .tex file. Documentation comment markers are stripped,
// macrocode environments become verbatim, package-flag lines are dropped,
// and the driver preamble and closing lines are copied unchanged.
package dtx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/dtx2tex/pkg/types"
)

const (
	// InputExt is the extension of documented sources.
	InputExt = ".dtx"
	// OutputExt is the extension of generated files.
	OutputExt = ".tex"

	maxLineSize = 1 << 20
)

// Options controls a conversion.
type Options struct {
	// Verbose writes anchor and pair diagnostics before the output is written.
	Verbose bool
	// Diagnostics receives verbose output. Defaults to os.Stdout.
	Diagnostics io.Writer
}

func (o Options) diagnostics() io.Writer {
	if o.Diagnostics != nil {
		return o.Diagnostics
	}
	return os.Stdout
}

// Result describes a conversion. Line numbers are 0-indexed.
type Result struct {
	Input    string
	Output   string
	Anchors  Anchors
	Openers  []int
	Closers  []int
	Pairs    []Pair
	LinesIn  int
	LinesOut int
}

// Run converts r into a history record. started is when the attempt began;
// err is the attempt's outcome.
func (r Result) Run(started time.Time, err error) types.Run {
	run := types.Run{
		Input:     r.Input,
		Output:    r.Output,
		Status:    types.RunConverted,
		Pairs:     len(r.Pairs),
		LinesIn:   r.LinesIn,
		LinesOut:  r.LinesOut,
		StartedAt: started.UTC(),
		Duration:  time.Since(started),
	}
	if err == nil || errors.Is(err, ErrUnbalancedConditional) {
		run.Anchors = r.Anchors.Lines()
	}
	if err != nil {
		run.Status = types.RunFailed
		run.ErrorKind = Kind(err)
		run.Error = err.Error()
	}
	return run
}

// Transform produces the output lines for a documented source. The output
// is assembled in order: the driver preamble [documentclass, docinput)
// verbatim; the rewritten body between each \fi and the next \iffalse; the
// rewritten tail from the last \fi to \endinput; and the closing lines
// (docinput, enddocument] verbatim.
func Transform(lines []string) ([]string, Result, error) {
	res := Result{LinesIn: len(lines)}

	a, err := Locate(lines)
	if err != nil {
		return nil, res, err
	}
	res.Anchors = a

	res.Openers, res.Closers = ScanConditionals(lines, a.EndInput)
	res.Pairs, err = MatchPairs(res.Openers, res.Closers)
	if err != nil {
		return nil, res, err
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[a.DocumentClass:a.DocInput]...)
	for i := 0; i+1 < len(res.Pairs); i++ {
		out = appendBody(out, lines, res.Pairs[i].Fi+1, res.Pairs[i+1].IfFalse)
	}
	tail := a.EndDocument + 1
	if n := len(res.Pairs); n > 0 {
		tail = res.Pairs[n-1].Fi + 1
	}
	out = appendBody(out, lines, tail, a.EndInput)
	out = append(out, lines[a.DocInput+1:a.EndDocument+1]...)

	res.LinesOut = len(out)
	return out, res, nil
}

// appendBody rewrites lines[from:to] onto out. An empty or inverted range
// appends nothing.
func appendBody(out, lines []string, from, to int) []string {
	for i := from; i < to; i++ {
		if s, keep := Rewrite(lines[i]); keep {
			out = append(out, s)
		}
	}
	return out
}

// ConvertStream reads a documented source from r and writes the converted
// document to w.
func ConvertStream(r io.Reader, w io.Writer) (Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return Result{}, &IOError{Op: "reading", Path: "-", Err: err}
	}
	out, res, err := Transform(lines)
	if err != nil {
		return res, err
	}
	if err := writeLines(w, out); err != nil {
		return res, &IOError{Op: "writing", Path: "-", Err: err}
	}
	return res, nil
}

// Convert reads inputName.dtx and writes outputName.tex. Both names may be
// given with or without their extension; an empty outputName defaults to
// inputName. The output file is only created once the input has been
// located and paired successfully.
func Convert(inputName, outputName string, opts Options) (Result, error) {
	if outputName == "" {
		outputName = inputName
	}
	in := WithExt(inputName, InputExt)
	out := WithExt(strings.TrimSuffix(outputName, InputExt), OutputExt)

	lines, err := ReadFile(in)
	if err != nil {
		return Result{Input: in, Output: out}, err
	}

	body, res, err := Transform(lines)
	res.Input, res.Output = in, out
	if err != nil {
		return res, err
	}

	if opts.Verbose {
		WriteDiagnostics(opts.diagnostics(), res)
	}

	if err := WriteFile(out, body); err != nil {
		return res, err
	}
	return res, nil
}

// WithExt returns name with ext appended unless it already ends in ext.
func WithExt(name, ext string) string {
	return strings.TrimSuffix(name, ext) + ext
}

// ReadFile reads path into lines without their terminators.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "opening", Path: path, Err: err}
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, &IOError{Op: "reading", Path: path, Err: err}
	}
	return lines, nil
}

// WriteFile creates or truncates path and writes each line followed by a
// newline. A failure part way through leaves a truncated file.
func WriteFile(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "creating", Path: path, Err: err}
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		return &IOError{Op: "writing", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "closing", Path: path, Err: err}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}
	return lines, nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
