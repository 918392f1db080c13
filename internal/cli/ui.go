package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines to w.
type printer struct {
	w io.Writer
}

// success prints a success message.
func (p printer) success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// error prints an error message.
func (p printer) error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, styleIconError.Render(iconError)+" "+msg)
}

// warning prints a warning message.
func (p printer) warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// info prints an info/status message.
func (p printer) info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// detail prints a detail line (indented).
func (p printer) detail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, "  "+StyleDim.Render(msg))
}

// mapping prints "from → to" on an indented line.
func (p printer) mapping(from, to string) {
	fmt.Fprintln(p.w, "  "+StyleValue.Render(from)+" "+StyleDim.Render(iconArrow)+" "+StyleHighlight.Render(to))
}

// newline prints an empty line.
func (p printer) newline() {
	fmt.Fprintln(p.w)
}
