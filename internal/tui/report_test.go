package tui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/compresr/session-keeper/internal/compactor"
	"github.com/compresr/session-keeper/internal/health"
	"github.com/compresr/session-keeper/internal/monitoring"
)

func TestPrinter_NoColorOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.PrintHeader("Session Health Check")
	p.PrintSuccess("done")
	p.PrintWarn("careful")

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "=== Session Health Check ===")
	assert.Contains(t, out, "[OK] done")
	assert.Contains(t, out, "[WARN] careful")
}

func TestPrinter_Compacted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Compacted("codex", &compactor.Outcome{
		Path:          "/tmp/sessions/run.jsonl",
		Status:        compactor.StatusCompacted,
		OriginalLines: 205,
		RetainedLines: 55,
		OriginalBytes: 4096,
		RetainedBytes: 1024,
		BackupPath:    "/tmp/sessions/run.jsonl.backup",
	})

	out := buf.String()
	assert.Contains(t, out, "run.jsonl [codex]")
	assert.Contains(t, out, "Current: 205 lines, 4.00 KB")
	assert.Contains(t, out, "✓ Backup created")
	assert.Contains(t, out, "Compressed: 205 → 55 lines")
	assert.Contains(t, out, "Size: 4.00 KB → 1.00 KB")
	assert.Contains(t, out, "Saved: 3.00 KB")
}

func TestPrinter_SkippedAndFailed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Skipped("aider", &compactor.Outcome{Path: "/x/small.jsonl", OriginalLines: 10, OriginalBytes: 512})
	p.Failed("aider", "/x/gone.jsonl", errors.New("File not found: /x/gone.jsonl"))

	out := buf.String()
	assert.Contains(t, out, "✓ small.jsonl (10 lines, 0.50 KB)")
	assert.Contains(t, out, "✗ gone.jsonl [aider]: File not found: /x/gone.jsonl")
}

func TestPrinter_RunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	stats := monitoring.NewRunStats()
	stats.RecordChecked()
	stats.RecordChecked()
	stats.RecordCompression(2048)
	stats.RecordError("Backup failed: /x/a.jsonl")

	p.PrintRunSummary(stats)

	out := buf.String()
	assert.Contains(t, out, "Checked: 2")
	assert.Contains(t, out, "Compressed: 1")
	assert.Contains(t, out, "Skipped: 0")
	assert.Contains(t, out, "Total saved: 2.00 KB")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "  - Backup failed: /x/a.jsonl")
}

func TestPrinter_PrintHealth(t *testing.T) {
	healthy := health.SessionHealth{
		Path:         "/x/ok.jsonl",
		Tool:         "codex",
		SizeBytes:    400,
		Lines:        3,
		LastModified: time.Now(),
	}
	large := health.SessionHealth{
		Path:         "/x/big.jsonl",
		Tool:         "codex",
		SizeBytes:    600 * 1024,
		Lines:        10,
		LastModified: time.Now(),
		Result:       health.Result{NeedsCompaction: true, Reason: health.ReasonSize},
	}
	long := health.SessionHealth{
		Path:   "/x/long.jsonl",
		Tool:   "aider",
		Lines:  301,
		Result: health.Result{NeedsCompaction: true, Reason: health.ReasonLines},
	}

	var quiet bytes.Buffer
	p := NewPrinter(&quiet, false)
	p.PrintHealth(healthy)
	p.PrintHealth(large)
	p.PrintHealth(long)

	out := quiet.String()
	assert.NotContains(t, out, "ok.jsonl")
	assert.Contains(t, out, "big.jsonl [codex]")
	assert.Contains(t, out, "Status: Too large")
	assert.Contains(t, out, "long.jsonl [aider]")
	assert.Contains(t, out, "Status: Too many lines")
	assert.NotContains(t, out, "Estimated tokens")

	var verbose bytes.Buffer
	NewPrinter(&verbose, true).PrintHealth(healthy)
	assert.Contains(t, verbose.String(), "ok.jsonl [codex]")
	assert.Contains(t, verbose.String(), "Status: OK")
	assert.Contains(t, verbose.String(), "Estimated tokens: ~100")
}

func TestPrinter_PrintHealthSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).PrintHealthSummary(health.Summary{
		Sessions:        3,
		TotalBytes:      3072,
		TotalLines:      400,
		NeedCompression: 1,
	}, "session-keeper compact --all")

	out := buf.String()
	assert.Contains(t, out, "Total sessions: 3")
	assert.Contains(t, out, "Total size: 3.00 KB")
	assert.Contains(t, out, "Total lines: 400")
	assert.Contains(t, out, "Need compression: 1")
	assert.Contains(t, out, "session-keeper compact --all")
	assert.NotContains(t, out, "All sessions are healthy!")

	buf.Reset()
	NewPrinter(&buf, false).PrintHealthSummary(health.Summary{Sessions: 1}, "unused")
	assert.Contains(t, buf.String(), "[OK] All sessions are healthy!")
	assert.NotContains(t, buf.String(), "Recommendation")
}

func TestPrinter_PrintTool(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.PrintTool("codex", "/home/u/.codex/sessions", true)
	p.PrintTool("aider", "/home/u/.aider/sessions", false)

	out := buf.String()
	assert.Contains(t, out, "codex")
	assert.Contains(t, out, "/home/u/.codex/sessions (found)")
	assert.Contains(t, out, "/home/u/.aider/sessions (missing)")
	assert.Equal(t, "3 session(s)", Sessions(3))
}
