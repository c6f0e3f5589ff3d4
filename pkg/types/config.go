// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
	"time"
)

// Configuration validation errors.
var (
	ErrMissingInput    = errors.New("input path is required")
	ErrMissingOutput   = errors.New("output path is required")
	ErrSamePaths       = errors.New("input and output must be different files")
	ErrInvalidWorkers  = errors.New("workers must be at least 1")
	ErrInvalidDebounce = errors.New("debounce must be non-negative")
	ErrInvalidLogLevel = errors.New("log level must be one of: debug, info, warn, error")
)

// LogConfig selects logger verbosity and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// JSON switches the log encoding from text to JSON.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// Config holds everything one pipeline invocation needs.
type Config struct {
	// Input is the raw text file, one purchase note per line.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the CSV file to create or overwrite.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Lookup is an optional YAML, TOML or JSON file merged over the
	// built-in lookup tables.
	Lookup string `json:"lookup,omitempty" yaml:"lookup,omitempty" mapstructure:"lookup"`

	// Database is an optional SQLite file that receives every cleaned row.
	Database string `json:"database,omitempty" yaml:"database,omitempty" mapstructure:"database"`

	// Workers is the number of goroutines normalizing rows (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Debounce is the quiet period after an input change before a watch
	// re-run (default 500ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`

	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrMissingInput
	}
	if strings.TrimSpace(c.Output) == "" {
		return ErrMissingOutput
	}
	if c.Input == c.Output {
		return ErrSamePaths
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.Debounce < 0 {
		return ErrInvalidDebounce
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}
