package tui

import (
	"fmt"
	"path/filepath"

	"github.com/compresr/session-keeper/internal/compactor"
	"github.com/compresr/session-keeper/internal/health"
	"github.com/compresr/session-keeper/internal/monitoring"
)

// =============================================================================
// COMPACT REPORT
// =============================================================================

// CompactSettings is the configuration block shown before a compact run.
type CompactSettings struct {
	MaxSizeKB       float64
	MaxLines        int
	KeepMessages    int
	KeepSystemLines int
	Backup          bool
	Force           bool
	ConfigSource    string
}

// PrintCompactSettings prints the settings a compact run uses.
func (p *Printer) PrintCompactSettings(s CompactSettings) {
	backup := "No"
	if s.Backup {
		backup = "Yes"
	}
	p.PrintLine("Configuration:")
	p.PrintLine("  Source: %s", s.ConfigSource)
	p.PrintLine("  Max size: %g KB", s.MaxSizeKB)
	p.PrintLine("  Max lines: %d", s.MaxLines)
	p.PrintLine("  Keep messages: %d", s.KeepMessages)
	p.PrintLine("  Keep system: %d", s.KeepSystemLines)
	p.PrintLine("  Backup: %s", backup)
	p.PrintLine("  Force: %t", s.Force)
	p.PrintLine("")
}

// Compacted reports a rewritten session. Implements compactor.Reporter.
func (p *Printer) Compacted(tool string, out *compactor.Outcome) {
	p.printf("\n%s [%s]\n", p.paint(ColorBold, filepath.Base(out.Path)), tool)
	p.printf("  Current: %d lines, %s\n", out.OriginalLines, kb(out.OriginalBytes))
	if out.BackupPath != "" {
		p.printf("  %s Backup created\n", p.paint(ColorGreen, "✓"))
	}
	p.printf("  Compressed: %d → %d lines\n", out.OriginalLines, out.RetainedLines)
	p.printf("  Size: %s → %s\n", kb(out.OriginalBytes), kb(out.RetainedBytes))
	if saved := out.SavedBytes(); saved > 0 {
		p.printf("  Saved: %s\n", kb(saved))
	}
}

// Skipped reports a session already within limits. Implements compactor.Reporter.
func (p *Printer) Skipped(_ string, out *compactor.Outcome) {
	p.printf("  %s %s (%d lines, %s)\n",
		p.paint(ColorGreen, "✓"), filepath.Base(out.Path), out.OriginalLines, kb(out.OriginalBytes))
}

// Failed reports a session that could not be compacted. Implements compactor.Reporter.
func (p *Printer) Failed(tool, path string, err error) {
	p.printf("  %s %s [%s]: %v\n", p.paint(ColorRed, "✗"), filepath.Base(path), tool, err)
}

// PrintRunSummary prints the statistics of a compact run.
func (p *Printer) PrintRunSummary(s *monitoring.RunStats) {
	p.PrintSection("Summary")
	p.PrintLine("Checked: %d", s.Checked)
	p.PrintLine("Compressed: %d", s.Compressed)
	p.PrintLine("Skipped: %d", s.Skipped)
	if s.SavedBytes > 0 {
		p.PrintLine("Total saved: %s", kb(s.SavedBytes))
	}
	if len(s.Errors) > 0 {
		p.PrintLine("Errors: %d", len(s.Errors))
		for _, e := range s.Errors {
			p.PrintLine("  - %s", e)
		}
	}
}

// =============================================================================
// HEALTH REPORT
// =============================================================================

// PrintHealth prints one session's health. Healthy sessions are shown only
// in verbose mode.
func (p *Printer) PrintHealth(h health.SessionHealth) {
	if !h.NeedsCompaction && !p.verbose {
		return
	}

	p.printf("\n%s [%s]\n", p.paint(ColorBold, filepath.Base(h.Path)), h.Tool)
	p.printf("  %10.2f KB | %6d lines\n", h.SizeKB(), h.Lines)

	if h.NeedsCompaction {
		status := "Too many lines"
		if h.Reason == health.ReasonSize {
			status = "Too large"
		}
		p.printf("  Status: %s\n", p.paint(ColorYellow, status))
		p.printf("  Last modified: %s\n", h.LastModified.Local().Format("2006-01-02 15:04:05"))
	} else {
		p.printf("  Status: %s\n", p.paint(ColorGreen, "OK"))
	}
	if p.verbose {
		p.printf("  Estimated tokens: ~%d\n", h.EstimatedTokens())
	}
}

// PrintHealthSummary prints the totals of a health check and a recommendation.
func (p *Printer) PrintHealthSummary(s health.Summary, compactCommand string) {
	p.PrintSection("Summary")
	p.PrintLine("Total sessions: %d", s.Sessions)
	p.PrintLine("Total size: %s", kb(s.TotalBytes))
	p.PrintLine("Total lines: %d", s.TotalLines)
	p.PrintLine("Need compression: %d", s.NeedCompression)
	p.PrintLine("")

	if s.NeedCompression > 0 {
		p.PrintLine("Recommendation:")
		p.PrintLine("  Run compression to optimize sessions:")
		p.PrintLine("  %s", compactCommand)
		return
	}
	p.PrintSuccess("All sessions are healthy!")
}

// PrintTool prints one configured tool and whether its directory exists.
func (p *Printer) PrintTool(name, dir string, exists bool) {
	state := p.paint(ColorDim, "missing")
	if exists {
		state = p.paint(ColorGreen, "found")
	}
	p.printf("  %-12s %s (%s)\n", name, dir, state)
}

// Sessions renders a count for messages like "Found 3 session(s)".
func Sessions(n int) string {
	return fmt.Sprintf("%d session(s)", n)
}

// Ensure Printer implements compactor.Reporter
var _ compactor.Reporter = (*Printer)(nil)
