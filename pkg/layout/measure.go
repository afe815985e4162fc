package layout

import "github.com/yaklabco/mdsync/pkg/blocktree"

// Measurer assigns Height and OffsetTop to every block of a tree.
type Measurer struct {
	metrics Metrics
}

// NewMeasurer creates a Measurer. Invalid metrics are replaced with defaults.
func NewMeasurer(metrics Metrics) *Measurer {
	if !metrics.Validate() {
		metrics = DefaultMetrics()
	}
	return &Measurer{metrics: metrics}
}

// Metrics returns the geometry model in use.
func (m *Measurer) Metrics() Metrics {
	return m.metrics
}

// Measure walks the tree in document order, computing each block's height
// from its kind and source line span, and accumulating offsets top-down with
// BlockMargin between consecutive blocks. It returns the total height
// (offset + height of the last block).
func (m *Measurer) Measure(tree *blocktree.Tree) float64 {
	if tree == nil {
		return 0
	}

	offset := 0.0
	for i, b := range tree.Blocks() {
		if i > 0 {
			offset += m.metrics.BlockMargin
		}
		b.OffsetTop = offset
		b.Height = m.BlockHeight(b)
		offset += b.Height
	}
	return offset
}

// BlockHeight computes the rendered height of a single block.
func (m *Measurer) BlockHeight(b *blocktree.Block) float64 {
	lines := b.Range.Span()
	if lines == 0 {
		// Untagged blocks still occupy one text line.
		lines = 1
	}

	switch b.Kind {
	case blocktree.KindCodeBlock, blocktree.KindFrontmatter:
		return float64(lines)*m.metrics.CodeLineHeight + 2*m.metrics.CodePadding
	case blocktree.KindHeading:
		return m.metrics.LineHeight * m.metrics.headingScale(b.HeadingLevel)
	case blocktree.KindThematicBreak:
		return m.metrics.BreakHeight
	default:
		return float64(lines) * m.metrics.LineHeight
	}
}
