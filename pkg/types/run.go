// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus indicates the outcome of a conversion attempt.
type RunStatus string

const (
	RunConverted RunStatus = "converted"
	RunFailed    RunStatus = "failed"
)

// Anchors holds the 1-indexed line numbers of the structural lines of a
// documented source, as reported to users.
type Anchors struct {
	DocumentClass int `json:"documentclass" yaml:"documentclass"`
	BeginDocument int `json:"begindocument" yaml:"begindocument"`
	DocInput      int `json:"docinput" yaml:"docinput"`
	EndDocument   int `json:"enddocument" yaml:"enddocument"`
	EndInput      int `json:"endinput" yaml:"endinput"`
}

// Run records one conversion attempt.
type Run struct {
	// ID is assigned by the history store.
	ID int64 `json:"id" yaml:"id"`

	Input  string    `json:"input" yaml:"input"`
	Output string    `json:"output" yaml:"output"`
	Status RunStatus `json:"status" yaml:"status"`

	// ErrorKind is "missing_anchor", "anchor_order", "unbalanced_conditional",
	// "io", or empty on success.
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`

	Anchors Anchors `json:"anchors" yaml:"anchors"`

	// Pairs is the number of \iffalse/\fi blocks paired.
	Pairs int `json:"pairs" yaml:"pairs"`

	LinesIn  int `json:"lines_in" yaml:"lines_in"`
	LinesOut int `json:"lines_out" yaml:"lines_out"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}
