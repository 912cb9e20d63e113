package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/qrdots/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255") // bright white
	colorLabel  = lipgloss.Color("245") // gray
	colorMuted  = lipgloss.Color("240") // dim gray
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleCached  = lipgloss.NewStyle().Foreground(colorOK)
	styleFresh   = lipgloss.NewStyle().Foreground(colorLabel)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// Status icons, pre-rendered.
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorLabel).Render("›")
	iconArrow   = StyleDim.Render("→")
)

// uiOut receives all status output. Artifacts written to stdout bypass it.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Status lines
// =============================================================================

func status(icon, format string, args ...any) {
	fmt.Fprintln(uiOut, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	fmt.Fprintln(uiOut, iconWarning+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+iconArrow+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(uiOut) }

// =============================================================================
// Stats
// =============================================================================

// statsParts describes a run as short unstyled phrases. Zero counts are
// omitted so encode-only runs print just the grid.
func statsParts(stats pipeline.Stats) []string {
	parts := []string{fmt.Sprintf("%d×%d modules", stats.Modules, stats.Modules)}
	if stats.Version > 0 {
		parts = append(parts, fmt.Sprintf("version %d", stats.Version))
	}
	if stats.Shapes > 0 {
		parts = append(parts, fmt.Sprintf("%d shapes", stats.Shapes))
	}
	if stats.Circles > 0 || stats.Squares > 0 {
		parts = append(parts, fmt.Sprintf("%d dots / %d squares", stats.Circles, stats.Squares))
	}
	return parts
}

// printStats prints run statistics on one line, ending with the cache state.
func printStats(stats pipeline.Stats, cached bool) {
	parts := statsParts(stats)
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleFresh.Render("fresh"))
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
