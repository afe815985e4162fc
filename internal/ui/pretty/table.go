package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdsync/pkg/blocktree"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minLinesWidth    = 7
	minKindWidth     = 6
	minLangWidth     = 4
	offsetColWidth   = 9
	heightColWidth   = 8
	heavySeparator   = "="
	defaultTermWidth = 100
	untaggedMarker   = "-"
)

// TableFormatter formats a block tree as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter. A non-positive width falls
// back to defaultTermWidth.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTree renders the block map table: one row per block with its line
// range, kind, measured geometry, and language tag.
func (t *TableFormatter) FormatTree(tree *blocktree.Tree) string {
	if tree == nil || tree.Len() == 0 {
		return ""
	}

	linesW, kindW, langW := t.columnWidths(tree)

	var b strings.Builder
	header := fmt.Sprintf("%-6s  %-*s  %-*s  %*s  %*s  %-*s",
		"BLOCK", linesW, "LINES", kindW, "KIND",
		offsetColWidth, "OFFSET", heightColWidth, "HEIGHT", langW, "LANG")
	b.WriteString(t.styles.TableHeader.Render(header))
	b.WriteString("\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, len(header))))
	b.WriteString("\n")

	for _, blk := range tree.Blocks() {
		row := fmt.Sprintf("%-6d  %-*s  %-*s  %*.1f  %*.1f  %-*s",
			blk.ID, linesW, formatRange(blk), kindW, blk.Kind.String(),
			offsetColWidth, blk.OffsetTop, heightColWidth, blk.Height,
			langW, blk.Language)
		b.WriteString(t.rowStyle(blk).Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

// rowStyle picks the style for a block row.
func (t *TableFormatter) rowStyle(blk *blocktree.Block) lipgloss.Style {
	switch {
	case !blk.Tagged:
		return t.styles.UntaggedRow
	case blk.Kind.IsRawZone():
		return t.styles.RawZoneRow
	case blk.Kind == blocktree.KindHeading:
		return t.styles.HeadingRow
	default:
		return lipgloss.NewStyle()
	}
}

// columnWidths sizes the variable columns from content.
func (t *TableFormatter) columnWidths(tree *blocktree.Tree) (int, int, int) {
	linesW, kindW, langW := minLinesWidth, minKindWidth, minLangWidth
	for _, blk := range tree.Blocks() {
		if w := len(formatRange(blk)); w > linesW {
			linesW = w
		}
		if w := len(blk.Kind.String()); w > kindW {
			kindW = w
		}
		if w := len(blk.Language); w > langW {
			langW = w
		}
	}
	return linesW, kindW, langW
}

// formatRange renders a block's line range, or a marker for untagged blocks.
func formatRange(blk *blocktree.Block) string {
	if !blk.Tagged {
		return untaggedMarker
	}
	if blk.Range.Start == blk.Range.End {
		return fmt.Sprintf("%d", blk.Range.Start)
	}
	return fmt.Sprintf("%d-%d", blk.Range.Start, blk.Range.End)
}
