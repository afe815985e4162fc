package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/mdsync/pkg/linemap"
)

// SummaryFormatter renders the post-build summary line.
type SummaryFormatter struct {
	styles *Styles
}

// NewSummaryFormatter creates a summary formatter.
func NewSummaryFormatter(styles *Styles) *SummaryFormatter {
	return &SummaryFormatter{styles: styles}
}

// FormatBuild renders a one-line summary of a successful rebuild plus the
// mapped extent.
func (s *SummaryFormatter) FormatBuild(ev linemap.UpdateEvent, mappedHeight float64) string {
	var b strings.Builder
	b.WriteString(s.styles.SummaryTitle.Render("map"))
	b.WriteString(" ")
	b.WriteString(s.styles.Success.Render("built"))
	b.WriteString(s.styles.Dim.Render(fmt.Sprintf(
		"  %d lines, %d blocks, %.1fpx, %s",
		ev.LineCount, ev.ElementCount, mappedHeight,
		ev.BuildTime.Round(10*time.Microsecond),
	)))
	return b.String()
}

// FormatError renders a one-line summary of a failed rebuild.
func (s *SummaryFormatter) FormatError(ev linemap.ErrorEvent) string {
	return s.styles.SummaryTitle.Render("map") + " " +
		s.styles.Failure.Render("failed") + " " +
		s.styles.Dim.Render(ev.Message)
}
