package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, positive band
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, negative band
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text, neutral band
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)

	// bandStyles colors sentiment band names the way the default palette
	// colors the diagram.
	bandStyles = map[sentiment.Band]lipgloss.Style{
		sentiment.Positive: lipgloss.NewStyle().Foreground(colorGreen),
		sentiment.Neutral:  lipgloss.NewStyle().Foreground(colorGray),
		sentiment.Negative: lipgloss.NewStyle().Foreground(colorRed),
	}
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives all human-readable status lines.
var statusOut io.Writer = os.Stdout

func status(icon string, iconStyle lipgloss.Style, msg string) {
	fmt.Fprintln(statusOut, iconStyle.Render(icon)+" "+msg)
}

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	status(iconSuccess, styleIconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(iconError, styleIconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, styleIconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(statusOut)
}

// =============================================================================
// Layout Summary
// =============================================================================

// printStats prints layout statistics on a single line, e.g.
// "4 nodes · 12 words · 6 ribbons · cached".
func printStats(nodeCount, wordCount, ribbonCount int, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	}
	if wordCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d words", wordCount)))
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("%d ribbons", ribbonCount)))

	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printBands prints how many ribbons fall in each sentiment band, e.g.
// "ribbons: 2 positive · 1 neutral · 3 negative". Nothing is printed for a
// layout without ribbons.
func printBands(l graph.Layout) {
	if line := bandSummary(l); line != "" {
		fmt.Fprintln(statusOut, "  "+StyleDim.Render("ribbons: ")+line)
	}
}

func bandSummary(l graph.Layout) string {
	if len(l.Ribbons) == 0 {
		return ""
	}
	counts := make(map[string]int, len(sentiment.Bands))
	for _, r := range l.Ribbons {
		counts[r.Band]++
	}
	parts := make([]string, 0, len(sentiment.Bands))
	for _, b := range sentiment.Bands {
		if n := counts[b.String()]; n > 0 {
			parts = append(parts, bandStyles[b].Render(fmt.Sprintf("%d %s", n, b)))
		}
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// bandStyle returns the style for a band name as stored in a layout.
func bandStyle(name string) (lipgloss.Style, bool) {
	for _, b := range sentiment.Bands {
		if b.String() == name {
			return bandStyles[b], true
		}
	}
	return lipgloss.Style{}, false
}
