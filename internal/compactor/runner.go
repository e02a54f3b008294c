package compactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/discovery"
	"github.com/compresr/session-keeper/internal/monitoring"
)

// Reporter receives per-session results as a batch runs.
type Reporter interface {
	Compacted(tool string, out *Outcome)
	Skipped(tool string, out *Outcome)
	Failed(tool, path string, err error)
}

type nopReporter struct{}

func (nopReporter) Compacted(string, *Outcome)   {}
func (nopReporter) Skipped(string, *Outcome)     {}
func (nopReporter) Failed(string, string, error) {}

// Runner compacts sessions one after another and accumulates run stats.
// A failure on one session is recorded and the batch moves on.
type Runner struct {
	compactor   *Compactor
	reporter    Reporter
	events      *monitoring.EventLog
	keepBackups bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithReporter sets the per-session reporter.
func WithReporter(r Reporter) RunnerOption {
	return func(rn *Runner) { rn.reporter = r }
}

// WithEventLog sets the event log. A nil log discards events.
func WithEventLog(l *monitoring.EventLog) RunnerOption {
	return func(rn *Runner) { rn.events = l }
}

// WithKeepBackups leaves backups on disk after the run.
func WithKeepBackups(keep bool) RunnerOption {
	return func(rn *Runner) { rn.keepBackups = keep }
}

// NewRunner creates a Runner around c.
func NewRunner(c *Compactor, opts ...RunnerOption) *Runner {
	r := &Runner{compactor: c, reporter: nopReporter{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run compacts every target in order. Backups of successful compactions are
// removed once the batch is done unless backups are kept. The returned error
// is non-nil only when ctx was cancelled; per-file failures are in Stats.Errors.
func (r *Runner) Run(ctx context.Context, targets []discovery.Session) (*monitoring.RunStats, error) {
	stats := monitoring.NewRunStats()

	var runErr error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		r.compactOne(t, stats)
	}

	if !r.keepBackups {
		if err := r.compactor.Cleanup(); err != nil {
			log.Warn().Err(err).Msg("compactor: backup cleanup incomplete")
			stats.RecordError(err.Error())
		}
	}

	if err := r.events.LogRunComplete(stats); err != nil {
		log.Warn().Err(err).Str("path", r.events.Path()).Msg("compactor: failed to write event")
	}
	return stats, runErr
}

func (r *Runner) compactOne(t discovery.Session, stats *monitoring.RunStats) {
	stats.RecordChecked()

	out, err := r.compactor.Compact(t.Path)
	if err != nil {
		stats.RecordError(errorMessage(t.Path, err))
		r.reporter.Failed(t.Tool, t.Path, err)
		r.logEvent(r.events.LogError(t.Path, t.Tool, err))
		log.Debug().Err(err).Str("path", t.Path).Msg("compactor: session failed")
		return
	}

	event := monitoring.Event{
		Session:       t.Path,
		Tool:          t.Tool,
		OriginalLines: out.OriginalLines,
		RetainedLines: out.RetainedLines,
		OriginalBytes: out.OriginalBytes,
		RetainedBytes: out.RetainedBytes,
	}

	switch out.Status {
	case StatusCompacted:
		stats.RecordCompression(out.SavedBytes())
		r.reporter.Compacted(t.Tool, out)
		event.Event = monitoring.EventSessionCompacted
	default:
		stats.RecordSkip()
		r.reporter.Skipped(t.Tool, out)
		event.Event = monitoring.EventSessionSkipped
	}
	r.logEvent(r.events.Log(event))
}

func (r *Runner) logEvent(err error) {
	if err != nil {
		log.Warn().Err(err).Str("path", r.events.Path()).Msg("compactor: failed to write event")
	}
}

// errorMessage renders the summary line for a failed session.
func errorMessage(path string, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("File not found: %s", path)
	case errors.Is(err, ErrBackupFailed):
		return fmt.Sprintf("Backup failed: %s", path)
	case errors.Is(err, ErrWriteFailed):
		return fmt.Sprintf("Compression failed: %s", path)
	default:
		return fmt.Sprintf("%s: %v", path, err)
	}
}
