package health

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/discovery"
	"github.com/compresr/session-keeper/internal/session"
)

// TokenEstimateRatio is the bytes-per-token ratio used for rough estimates.
const TokenEstimateRatio = 4

// SessionHealth is the health report for one session file.
type SessionHealth struct {
	Path         string
	Tool         string
	SizeBytes    int64
	Lines        int
	LastModified time.Time
	Result
}

// SizeKB returns the size in kilobytes.
func (s SessionHealth) SizeKB() float64 {
	return float64(s.SizeBytes) / 1024
}

// EstimatedTokens returns a byte-ratio token estimate.
func (s SessionHealth) EstimatedTokens() int64 {
	return s.SizeBytes / TokenEstimateRatio
}

// Summary aggregates a batch of health reports.
type Summary struct {
	Sessions        int
	TotalBytes      int64
	TotalLines      int
	NeedCompression int
}

// Inspect reads a session and evaluates it.
func Inspect(path, tool string, t Thresholds) (*SessionHealth, error) {
	f, err := session.Read(path)
	if err != nil {
		return nil, err
	}

	return &SessionHealth{
		Path:         f.Path,
		Tool:         tool,
		SizeBytes:    f.SizeBytes,
		Lines:        f.LineCount(),
		LastModified: f.LastModified,
		Result:       Evaluate(f.SizeBytes, f.LineCount(), t),
	}, nil
}

// CheckAll inspects every target. Unreadable files are logged and left out
// of the result. Cancellation is checked between files.
func CheckAll(ctx context.Context, targets []discovery.Session, t Thresholds) ([]SessionHealth, Summary, error) {
	var (
		reports []SessionHealth
		sum     Summary
	)

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return reports, sum, err
		}

		h, err := Inspect(target.Path, target.Tool, t)
		if err != nil {
			log.Error().Err(err).Str("path", target.Path).Msg("health: failed to read session")
			continue
		}

		reports = append(reports, *h)
		sum.Sessions++
		sum.TotalBytes += h.SizeBytes
		sum.TotalLines += h.Lines
		if h.NeedsCompaction {
			sum.NeedCompression++
		}
	}

	return reports, sum, nil
}
