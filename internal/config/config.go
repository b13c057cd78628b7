// Package config holds the options for a preparation run.
package config

import (
	"fmt"

	"github.com/dgallion1/ragprep/internal/chunker"
)

// DefaultSource labels output records when no source is given.
const DefaultSource = "adhd_guideline"

// Config carries the options for one run. Everything comes from
// command flags; the tool reads no environment.
type Config struct {
	Input    string // input JSONL path
	Output   string // output JSONL path
	MaxChars int    // character budget per chunk
	Source   string // corpus label stamped on every output record
}

// Default returns a Config with defaults applied.
func Default() Config {
	return Config{
		MaxChars: chunker.DefaultMaxChars,
		Source:   DefaultSource,
	}
}

func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("max-chars must be positive, got %d", c.MaxChars)
	}
	if c.Source == "" {
		return fmt.Errorf("source label is required")
	}
	return nil
}
