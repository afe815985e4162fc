// Package layout computes rendered heights and vertical offsets for a block
// tree. It is a deterministic stand-in for live browser layout measurement:
// the same metrics applied to the same tree always produce the same geometry,
// which keeps the mapper's position queries reproducible and testable.
package layout

// Metrics describes the vertical geometry model, in pixels.
type Metrics struct {
	// LineHeight is the rendered height of one source line of flowing text.
	LineHeight float64

	// CodeLineHeight is the rendered height of one line inside a code block.
	CodeLineHeight float64

	// CodePadding is the vertical padding applied above and below code
	// blocks and frontmatter.
	CodePadding float64

	// BlockMargin is the vertical gap between consecutive blocks.
	BlockMargin float64

	// BreakHeight is the fixed height of a thematic break.
	BreakHeight float64

	// HeadingScales multiply LineHeight per heading level (index 0 = h1).
	// Missing or non-positive entries fall back to 1.0.
	HeadingScales [6]float64
}

// DefaultMetrics returns geometry approximating a typical preview stylesheet
// (16px text with 1.5 line spacing).
func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight:     24,
		CodeLineHeight: 21,
		CodePadding:    12,
		BlockMargin:    16,
		BreakHeight:    33,
		HeadingScales:  [6]float64{2.0, 1.5, 1.25, 1.1, 1.0, 0.9},
	}
}

// headingScale returns the multiplier for a 1-based heading level.
func (m Metrics) headingScale(level int) float64 {
	if level < 1 || level > len(m.HeadingScales) {
		return 1.0
	}
	s := m.HeadingScales[level-1]
	if s <= 0 {
		return 1.0
	}
	return s
}

// Validate reports whether the metrics are usable.
func (m Metrics) Validate() bool {
	return m.LineHeight > 0 && m.CodeLineHeight > 0 &&
		m.CodePadding >= 0 && m.BlockMargin >= 0 && m.BreakHeight >= 0
}
