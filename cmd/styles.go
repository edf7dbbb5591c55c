package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#5B8DEF")
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	subtleColor  = lipgloss.Color("#666666")

	// TitleStyle is used for command headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// SuccessStyle formats "✓" lines.
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)

	// WarningStyle formats "⚠" lines.
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor)

	// ErrorStyle formats "✗" lines.
	ErrorStyle = lipgloss.NewStyle().Foreground(errorColor)

	// SubtleStyle formats secondary detail such as rule names.
	SubtleStyle = lipgloss.NewStyle().Foreground(subtleColor)

	BoldStyle = lipgloss.NewStyle().Bold(true)
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarningStyle.Render("⚠ Warning:"), fmt.Sprintf(format, args...))
}
