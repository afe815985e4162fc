// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Table components.
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	RawZoneRow     lipgloss.Style
	HeadingRow     lipgloss.Style
	UntaggedRow    lipgloss.Style

	// Resolve output.
	Label lipgloss.Style
	Value lipgloss.Style

	// Summary.
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc.
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		RawZoneRow:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		HeadingRow:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		UntaggedRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value: lipgloss.NewStyle().Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		TableHeader:    plain,
		TableSeparator: plain,
		RawZoneRow:     plain,
		HeadingRow:     plain,
		UntaggedRow:    plain,
		Label:          plain,
		Value:          plain,
		SummaryTitle:   plain,
		Success:        plain,
		Failure:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ColorEnabled decides whether to emit color for the given mode and writer.
// Mode "always" forces color, "never" disables it, and "auto" enables it
// only when the writer is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
