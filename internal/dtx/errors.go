// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAnchor reports that a required structural line was not found.
	ErrMissingAnchor = errors.New("anchor not found")

	// ErrAnchorOrder reports anchors found out of their required order.
	ErrAnchorOrder = errors.New("anchor out of order")

	// ErrUnbalancedConditional reports fewer \fi closers than \iffalse openers.
	ErrUnbalancedConditional = errors.New("unbalanced \\iffalse/\\fi conditionals")

	// ErrIO reports a failure reading the input or writing the output.
	ErrIO = errors.New("i/o failure")
)

// AnchorError identifies the anchor that could not be located or that
// appeared out of order.
type AnchorError struct {
	// Anchor is the directive searched for, e.g. `\DocInput`.
	Anchor string
	// Line is the 1-indexed line where the anchor was found, or 0 when missing.
	Line int
	Err  error
}

func (e *AnchorError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %v", e.Anchor, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Anchor, e.Err)
}

func (e *AnchorError) Unwrap() error { return e.Err }

// UnbalancedError carries the opener and closer counts of an unbalanced
// conditional scan.
type UnbalancedError struct {
	Openers int
	Closers int
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%v: %d openers, %d closers", ErrUnbalancedConditional, e.Openers, e.Closers)
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalancedConditional }

// Usable returns the number of complete pairs.
func (e *UnbalancedError) Usable() int {
	return min(e.Openers, e.Closers)
}

// IOError wraps a filesystem failure. It matches both ErrIO and the
// underlying error under errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Kind returns a short stable name for the failure class of err, or "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAnchor):
		return "missing_anchor"
	case errors.Is(err, ErrAnchorOrder):
		return "anchor_order"
	case errors.Is(err, ErrUnbalancedConditional):
		return "unbalanced_conditional"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}
