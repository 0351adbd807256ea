// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionConfig holds settings for a single dtx-to-tex conversion.
type ConversionConfig struct {
	// InputName is the documented source name, with or without ".dtx".
	InputName string `json:"input_name" yaml:"input_name"`

	// OutputName is the output name, with or without ".tex". Defaults to InputName.
	OutputName string `json:"output_name,omitempty" yaml:"output_name,omitempty"`

	// Verbose enables anchor and conditional-pair diagnostics.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// ReportPath, when set, receives a YAML or JSON report of the conversion.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// HistoryConfig holds settings for the conversion run log.
type HistoryConfig struct {
	// Enabled controls whether conversions are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default ".dtx2tex/history.db").
	Path string `json:"path" yaml:"path"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce collapses bursts of write events (default 300ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// Config groups all settings read from dtx2tex.yaml.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Watch      WatchConfig      `json:"watch" yaml:"watch"`
}
