// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

import (
	"regexp"

	"github.com/pdiddy/dtx2tex/pkg/types"
)

// Anchor directive names, used in errors and diagnostics.
const (
	AnchorDocumentClass = `\documentclass`
	AnchorBeginDocument = `\begin{document}`
	AnchorDocInput      = `\DocInput`
	AnchorEndDocument   = `\end{document}`
	AnchorEndInput      = `\endinput`
)

// Anchors holds the 0-indexed line numbers of the structural lines that
// partition a documented source.
type Anchors struct {
	DocumentClass int
	BeginDocument int
	DocInput      int
	EndDocument   int
	EndInput      int
}

// Lines returns the anchors as 1-indexed line numbers.
func (a Anchors) Lines() types.Anchors {
	return types.Anchors{
		DocumentClass: a.DocumentClass + 1,
		BeginDocument: a.BeginDocument + 1,
		DocInput:      a.DocInput + 1,
		EndDocument:   a.EndDocument + 1,
		EndInput:      a.EndInput + 1,
	}
}

// Locate finds the five anchors. The driver anchors are searched forward,
// each starting at the line where the previous one matched. \endinput is
// searched backward from the last line to the second, keeping the last
// match seen, so the earliest \endinput after line 1 wins.
func Locate(lines []string) (Anchors, error) {
	var a Anchors
	forward := []struct {
		name string
		re   *regexp.Regexp
		dst  *int
	}{
		{AnchorDocumentClass, reDocumentClass, &a.DocumentClass},
		{AnchorBeginDocument, reBeginDocument, &a.BeginDocument},
		{AnchorDocInput, reDocInput, &a.DocInput},
		{AnchorEndDocument, reEndDocument, &a.EndDocument},
	}

	from := 0
	for _, f := range forward {
		i, ok := searchForward(lines, from, f.re)
		if !ok {
			return Anchors{}, &AnchorError{Anchor: f.name, Err: ErrMissingAnchor}
		}
		*f.dst = i
		from = i
	}

	i, ok := searchBackward(lines, reEndInput)
	if !ok {
		return Anchors{}, &AnchorError{Anchor: AnchorEndInput, Err: ErrMissingAnchor}
	}
	if i < a.EndDocument {
		return Anchors{}, &AnchorError{Anchor: AnchorEndInput, Line: i + 1, Err: ErrAnchorOrder}
	}
	a.EndInput = i
	return a, nil
}

// searchForward returns the first index at or after from whose line matches re.
func searchForward(lines []string, from int, re *regexp.Regexp) (int, bool) {
	for i := from; i < len(lines); i++ {
		if re.MatchString(lines[i]) {
			return i, true
		}
	}
	return 0, false
}

// searchBackward walks from the last line down to index 1 and returns the
// last match encountered.
func searchBackward(lines []string, re *regexp.Regexp) (int, bool) {
	found, ok := 0, false
	for i := len(lines) - 1; i > 0; i-- {
		if re.MatchString(lines[i]) {
			found, ok = i, true
		}
	}
	return found, ok
}
