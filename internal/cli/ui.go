package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - points
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

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

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(18)
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
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// printer writes styled status lines. Commands build one on
// cmd.OutOrStdout() so output can be captured in tests.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer { return &printer{w: w} }

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// =============================================================================
// Status Output
// =============================================================================

func (p *printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p *printer) error(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p *printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p *printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// File Output
// =============================================================================

func (p *printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

func (p *printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// stats prints point-set statistics on a single line.
func (p *printer) stats(pointCount int, source string, cached bool) {
	parts := []string{fmt.Sprintf("%d points", pointCount)}
	if source != "" {
		parts = append(parts, source)
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · ") + statusStyle.Render(status))
	p.line(b.String())
}

// =============================================================================
// Report
// =============================================================================

// report prints each solver's answer and timing, then the verdict.
func (p *printer) report(rep *report.Report) {
	p.line(StyleTitle.Render("Closest pair"))
	for _, run := range rep.Runs {
		answer := StyleDim.Render("no pair (fewer than 2 points)")
		if run.Found {
			answer = fmt.Sprintf("%s  %s %s",
				StyleValue.Render(run.Pair.A.String()+" - "+run.Pair.B.String()),
				StyleDim.Render("d ="),
				StyleNumber.Render(fmt.Sprintf("%.6f", run.Pair.Distance)))
		}
		p.keyValue(run.Label, answer)
		p.keyValue("", StyleDim.Render(fmt.Sprintf("%.3f ms", run.ElapsedMS)))
	}

	if x, ok := rep.Speedup(); ok {
		p.info("%s is %s faster than %s",
			closest.Label(closest.NameDivideAndConquer),
			StyleNumber.Render(fmt.Sprintf("%.1fx", x)),
			closest.Label(closest.NameBruteForce))
	}
	if rep.Agree {
		p.success("Solvers agree")
	} else {
		p.error("Solvers disagree")
	}
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

func (p *printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p *printer) newline() {
	fmt.Fprintln(p.w)
}
