// Package compactor trims session files down to a retention window.
//
// DESIGN: Pure policy (NeedsCompaction, Retain) is kept apart from file I/O
// (Compactor) and batch bookkeeping (Runner).
//
// FILES:
//   - policy.go:    Policy, NeedsCompaction(), Retain()
//   - compactor.go: Compactor - backup, write, restore, backup cleanup
//   - runner.go:    Runner - sequential batch over many sessions, Stats
//   - errors.go:    Error kinds
package compactor

import "github.com/compresr/session-keeper/internal/health"

// Policy controls which lines survive compaction.
type Policy struct {
	KeepSystemLines int // Leading lines always kept
	KeepMessages    int // Trailing lines kept
}

// Window is the target line count after compaction.
func (p Policy) Window() int {
	return p.KeepSystemLines + p.KeepMessages
}

// NeedsCompaction decides whether a session should be rewritten.
// Besides the hard thresholds, a session holding more lines than the
// retention window is trimmed to it.
func NeedsCompaction(sizeBytes int64, lineCount int, p Policy, t health.Thresholds, force bool) bool {
	if force {
		return true
	}
	if health.Evaluate(sizeBytes, lineCount, t).NeedsCompaction {
		return true
	}
	return lineCount > p.Window()
}

// Retain returns the lines kept under p: the first KeepSystemLines lines
// followed by the last KeepMessages lines, with repeated lines collapsed to
// their first occurrence.
func Retain(lines []string, p Policy) []string {
	n := len(lines)
	ks := max(p.KeepSystemLines, 0)
	km := max(p.KeepMessages, 0)

	var prefix, suffix []string
	if n < ks {
		prefix = lines
	} else {
		prefix = lines[:ks]
		if n-ks < km {
			suffix = lines[ks:]
		} else {
			suffix = lines[n-km:]
		}
	}

	retained := make([]string, 0, len(prefix)+len(suffix))
	seen := make(map[string]struct{}, len(prefix)+len(suffix))
	for _, group := range [][]string{prefix, suffix} {
		for _, l := range group {
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			retained = append(retained, l)
		}
	}
	return retained
}
