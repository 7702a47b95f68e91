package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusOut receives status lines so that stdout carries only rendered output.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings in the interactive viewer.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue       = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Status lines
// =============================================================================

// statusKind selects the icon and colors of a status line.
type statusKind struct {
	icon string
	mark lipgloss.Style
	text lipgloss.Style
}

var (
	plainText     = lipgloss.NewStyle()
	statusSuccess = statusKind{"✓", lipgloss.NewStyle().Foreground(colorOK), plainText}
	statusError   = statusKind{"✗", lipgloss.NewStyle().Foreground(colorFail), plainText}
	statusWarning = statusKind{"!", lipgloss.NewStyle().Foreground(colorWarn), lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo    = statusKind{"›", lipgloss.NewStyle().Foreground(colorLabel), plainText}
)

func (k statusKind) print(format string, args ...any) {
	msg := k.text.Render(fmt.Sprintf(format, args...))
	fmt.Fprintln(statusOut, k.mark.Render(k.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file the command wrote.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints one labeled row of --stats output.
func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printStats prints the summary of a format run, e.g.
// "12 lines · 3 targets · cached".
func printStats(lines, targets int, cached bool) {
	parts := []string{StyleDim.Render(plural(lines, "line"))}
	if targets > 0 {
		parts = append(parts, StyleDim.Render(plural(targets, "target")))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorLabel).Render("fresh"))
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
