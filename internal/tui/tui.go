package tui

// TUI package renders the human-readable console report:
//   - Colored status prefixes (disabled when output is not a terminal)
//   - Per-session lines for check and compact runs
//   - Batch summaries

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorGreen  = "\033[0;32m"
	ColorBlue   = "\033[0;34m"
	ColorCyan   = "\033[0;36m"
	ColorYellow = "\033[1;33m"
	ColorRed    = "\033[0;31m"
)

// =============================================================================
// PRINTER
// =============================================================================

// Printer writes report output to w.
type Printer struct {
	w       io.Writer
	color   bool
	verbose bool
}

// NewPrinter creates a Printer. Colors are used only when w is a terminal.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color, verbose: verbose}
}

// Stdout returns a Printer on os.Stdout.
func Stdout(verbose bool) *Printer {
	return NewPrinter(os.Stdout, verbose)
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ColorReset
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// =============================================================================
// PRINT FUNCTIONS
// =============================================================================

// PrintHeader prints a styled section header.
func (p *Printer) PrintHeader(title string) {
	p.printf("%s\n\n", p.paint(ColorBold+ColorCyan, "=== "+title+" ==="))
}

// PrintSection prints a sub-section title.
func (p *Printer) PrintSection(title string) {
	p.printf("\n%s\n", p.paint(ColorBold, "=== "+title+" ==="))
}

// PrintSuccess prints a success message with green [OK] prefix.
func (p *Printer) PrintSuccess(msg string) {
	p.printf("%s %s\n", p.paint(ColorGreen, "[OK]"), msg)
}

// PrintInfo prints an info message with blue [INFO] prefix.
func (p *Printer) PrintInfo(msg string) {
	p.printf("%s %s\n", p.paint(ColorBlue, "[INFO]"), msg)
}

// PrintWarn prints a warning message with yellow [WARN] prefix.
func (p *Printer) PrintWarn(msg string) {
	p.printf("%s %s\n", p.paint(ColorYellow, "[WARN]"), msg)
}

// PrintError prints an error message with red [ERROR] prefix.
func (p *Printer) PrintError(msg string) {
	p.printf("%s %s\n", p.paint(ColorRed, "[ERROR]"), msg)
}

// PrintLine prints a plain line.
func (p *Printer) PrintLine(format string, args ...any) {
	p.printf(format+"\n", args...)
}

// kb formats a byte count as kilobytes with two decimals.
func kb(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}
