// Package health classifies sessions as healthy or in need of compaction.
//
// DESIGN: Evaluate is a pure function of (size, lines, thresholds).
// Inspect and CheckAll are the filesystem-facing wrappers used by the CLI.
//
// FILES:
//   - health.go:  Reason, Thresholds, Result, Evaluate()
//   - inspect.go: Inspect(), CheckAll(), Summary
package health

// Reason explains why a session needs compaction.
type Reason string

const (
	ReasonNone  Reason = "none"
	ReasonSize  Reason = "size"
	ReasonLines Reason = "lines"
)

// Thresholds are the hard limits a session must stay under.
type Thresholds struct {
	MaxSizeKB float64
	MaxLines  int
}

// Result is the outcome of Evaluate.
type Result struct {
	NeedsCompaction bool   `json:"needs_compaction"`
	Reason          Reason `json:"reason"`
}

// Evaluate checks size and line count against thresholds.
// When both limits are exceeded the reason is ReasonSize.
func Evaluate(sizeBytes int64, lineCount int, t Thresholds) Result {
	overSize := float64(sizeBytes)/1024 > t.MaxSizeKB
	overLines := lineCount > t.MaxLines

	switch {
	case overSize:
		return Result{NeedsCompaction: true, Reason: ReasonSize}
	case overLines:
		return Result{NeedsCompaction: true, Reason: ReasonLines}
	default:
		return Result{NeedsCompaction: false, Reason: ReasonNone}
	}
}
