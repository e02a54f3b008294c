// Package monitoring - stats.go provides run statistics.
//
// DESIGN: Plain counters for one batch run:
//   - checked:    sessions looked at
//   - compressed: sessions rewritten
//   - skipped:    sessions already within limits
//   - saved:      bytes removed across all compactions
//   - errors:     per-file failures, reported in the summary
//
// Runs are sequential so there is no locking.
package monitoring

// RunStats collects the statistics of one batch run.
type RunStats struct {
	Checked    int
	Compressed int
	Skipped    int
	SavedBytes int64
	Errors     []string
}

// NewRunStats creates empty run statistics.
func NewRunStats() *RunStats {
	return &RunStats{}
}

// RecordChecked records that a session was looked at.
func (s *RunStats) RecordChecked() { s.Checked++ }

// RecordCompression records a successful compaction.
func (s *RunStats) RecordCompression(savedBytes int64) {
	s.Compressed++
	s.SavedBytes += savedBytes
}

// RecordSkip records a session left untouched.
func (s *RunStats) RecordSkip() { s.Skipped++ }

// RecordError records a per-file failure.
func (s *RunStats) RecordError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// SavedKB returns saved bytes in kilobytes.
func (s *RunStats) SavedKB() float64 {
	return float64(s.SavedBytes) / 1024
}

// Stats returns current counters.
func (s *RunStats) Stats() map[string]int64 {
	return map[string]int64{
		"checked":     int64(s.Checked),
		"compressed":  int64(s.Compressed),
		"skipped":     int64(s.Skipped),
		"saved_bytes": s.SavedBytes,
		"errors":      int64(len(s.Errors)),
	}
}
