package config

import "fmt"

// validLogLevels are the accepted log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table
var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// validColorModes are the accepted color values.
//
//nolint:gochecknoglobals // Read-only lookup table
var validColorModes = map[string]bool{
	"auto": true, "always": true, "never": true,
}

// Validate checks the configuration for contradictions and out-of-range
// values. It returns the first problem found.
func (c *Config) Validate() error {
	if !c.Flavor.IsValid() {
		return fmt.Errorf("invalid flavor %q: must be commonmark or gfm", c.Flavor)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Color != "" && !validColorModes[c.Color] {
		return fmt.Errorf("invalid color %q: must be auto, always, or never", c.Color)
	}
	return c.validateLayout()
}

func (c *Config) validateLayout() error {
	l := c.Layout
	if l.LineHeight <= 0 {
		return fmt.Errorf("layout.line_height must be positive, got %g", l.LineHeight)
	}
	if l.CodeLineHeight <= 0 {
		return fmt.Errorf("layout.code_line_height must be positive, got %g", l.CodeLineHeight)
	}
	if l.CodePadding < 0 || l.BlockMargin < 0 || l.BreakHeight < 0 {
		return fmt.Errorf("layout paddings and margins must not be negative")
	}
	if len(l.HeadingScales) > 6 {
		return fmt.Errorf("layout.heading_scales accepts at most 6 entries, got %d", len(l.HeadingScales))
	}
	for i, s := range l.HeadingScales {
		if s <= 0 {
			return fmt.Errorf("layout.heading_scales[%d] must be positive, got %g", i, s)
		}
	}
	return nil
}
