// Package config defines configuration for mdsync: mapper timing, layout
// geometry, and output behavior. Types are plain data; loading and
// validation live alongside so the CLI and library share one source of
// defaults.
package config

import (
	"time"

	"github.com/yaklabco/mdsync/pkg/layout"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is recognized.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// LayoutConfig describes the vertical geometry model, in pixels.
type LayoutConfig struct {
	// LineHeight is the rendered height of one line of flowing text.
	LineHeight float64 `yaml:"line_height"`

	// CodeLineHeight is the rendered height of one line inside code blocks.
	CodeLineHeight float64 `yaml:"code_line_height"`

	// CodePadding is the vertical padding above and below code blocks.
	CodePadding float64 `yaml:"code_padding"`

	// BlockMargin is the vertical gap between consecutive blocks.
	BlockMargin float64 `yaml:"block_margin"`

	// BreakHeight is the fixed height of a thematic break.
	BreakHeight float64 `yaml:"break_height"`

	// HeadingScales multiply LineHeight per heading level (h1 first).
	HeadingScales []float64 `yaml:"heading_scales"`
}

// Config is the root configuration structure for mdsync.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// DebounceMs is the rebuild coalescing delay in milliseconds.
	DebounceMs int `yaml:"debounce_ms"`

	// LogLevel sets logger verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Color controls colorized output: auto, always, never.
	Color string `yaml:"color"`

	// Layout configures the geometry model.
	Layout LayoutConfig `yaml:"layout"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	m := layout.DefaultMetrics()
	return &Config{
		Flavor:     FlavorGFM,
		DebounceMs: 200,
		LogLevel:   "info",
		Color:      "auto",
		Layout: LayoutConfig{
			LineHeight:     m.LineHeight,
			CodeLineHeight: m.CodeLineHeight,
			CodePadding:    m.CodePadding,
			BlockMargin:    m.BlockMargin,
			BreakHeight:    m.BreakHeight,
			HeadingScales:  m.HeadingScales[:],
		},
	}
}

// Debounce returns the rebuild delay as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Metrics converts the layout section into layout.Metrics.
func (c *Config) Metrics() layout.Metrics {
	m := layout.Metrics{
		LineHeight:     c.Layout.LineHeight,
		CodeLineHeight: c.Layout.CodeLineHeight,
		CodePadding:    c.Layout.CodePadding,
		BlockMargin:    c.Layout.BlockMargin,
		BreakHeight:    c.Layout.BreakHeight,
	}
	for i, s := range c.Layout.HeadingScales {
		if i >= len(m.HeadingScales) {
			break
		}
		m.HeadingScales[i] = s
	}
	return m
}
