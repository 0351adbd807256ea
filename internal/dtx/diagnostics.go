// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

import (
	"fmt"
	"io"
)

// WriteDiagnostics reports the 1-indexed positions of every anchor and of
// every collected \iffalse opener and \fi closer.
func WriteDiagnostics(w io.Writer, res Result) {
	l := res.Anchors.Lines()
	fmt.Fprintf(w, "Stripping documentation lines from %s\n", res.Input)
	fmt.Fprintf(w, "Detecting: %s at line %d\n", AnchorDocumentClass, l.DocumentClass)
	fmt.Fprintf(w, "Detecting: %s at line %d\n", AnchorBeginDocument, l.BeginDocument)
	fmt.Fprintf(w, "Detecting: %s at line %d\n", AnchorDocInput, l.DocInput)
	fmt.Fprintf(w, "Detecting: %s at line %d\n", AnchorEndDocument, l.EndDocument)
	fmt.Fprintf(w, "Detecting: %s at line %d\n", AnchorEndInput, l.EndInput)
	fmt.Fprintf(w, "Detecting: \\iffalse total number %d, at lines %v\n", len(res.Openers), oneIndexed(res.Openers))
	fmt.Fprintf(w, "Detecting: \\fi total number %d, at lines %v\n", len(res.Closers), oneIndexed(res.Closers))
}

func oneIndexed(idx []int) []int {
	out := make([]int, len(idx))
	for i, n := range idx {
		out[i] = n + 1
	}
	return out
}
