package compactor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/health"
	"github.com/compresr/session-keeper/internal/session"
)

// BackupSuffix is appended to a session path to name its backup.
const BackupSuffix = ".backup"

// Status is the result of compacting one session.
type Status string

const (
	StatusCompacted Status = "compacted"
	StatusSkipped   Status = "skipped"
)

// Options configure a Compactor.
type Options struct {
	Policy     Policy
	Thresholds health.Thresholds
	Force      bool // Compact even when within limits
	Backup     bool // Copy the original to <path>.backup before writing
}

// Outcome describes what Compact did to one session.
type Outcome struct {
	Path          string
	Status        Status
	OriginalLines int
	RetainedLines int
	OriginalBytes int64
	RetainedBytes int64
	BackupPath    string // Set when a backup was written and is awaiting Cleanup
}

// SavedBytes returns how many bytes compaction removed.
func (o *Outcome) SavedBytes() int64 {
	if o.Status != StatusCompacted {
		return 0
	}
	return o.OriginalBytes - o.RetainedBytes
}

// Compactor rewrites session files in place.
//
// Backups of successful compactions are not removed immediately. They are
// queued and deleted by Cleanup, which the caller runs once it is done with
// the batch. A crash before Cleanup leaves the <path>.backup file behind.
type Compactor struct {
	opts    Options
	pending []string

	// File operations, replaceable in tests.
	writeFile func(name string, data []byte, perm fs.FileMode) error
	copyFile  func(src, dst string) error
}

// New creates a Compactor.
func New(opts Options) *Compactor {
	return &Compactor{
		opts:      opts,
		writeFile: os.WriteFile,
		copyFile:  copyFile,
	}
}

// Options returns the compactor's options.
func (c *Compactor) Options() Options {
	return c.opts
}

// Compact trims the session at path if it needs it.
// Errors wrap ErrNotFound, ErrBackupFailed or ErrWriteFailed.
func (c *Compactor) Compact(path string) (*Outcome, error) {
	f, err := session.Read(path)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Path:          path,
		Status:        StatusSkipped,
		OriginalLines: f.LineCount(),
		RetainedLines: f.LineCount(),
		OriginalBytes: f.SizeBytes,
		RetainedBytes: f.SizeBytes,
	}

	// Nothing to retain in an empty session.
	if f.LineCount() == 0 {
		return out, nil
	}
	if !NeedsCompaction(f.SizeBytes, f.LineCount(), c.opts.Policy, c.opts.Thresholds, c.opts.Force) {
		return out, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	backupPath := ""
	if c.opts.Backup {
		backupPath = path + BackupSuffix
		if err := c.copyFile(path, backupPath); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBackupFailed, path, err)
		}
		log.Debug().Str("backup", backupPath).Msg("compactor: backup created")
	}

	retained := Retain(f.Lines, c.opts.Policy)
	content := []byte(session.JoinLines(retained))

	if err := c.writeFile(path, content, info.Mode().Perm()); err != nil {
		werr := fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
		if backupPath == "" {
			return nil, werr
		}
		log.Warn().Str("path", path).Msg("compactor: restoring from backup")
		if rerr := c.copyFile(backupPath, path); rerr != nil {
			return nil, errors.Join(werr, fmt.Errorf("%w: %s: %w", ErrRestore, path, rerr))
		}
		return nil, werr
	}

	out.Status = StatusCompacted
	out.RetainedLines = len(retained)
	out.RetainedBytes = int64(len(content))
	if backupPath != "" {
		out.BackupPath = backupPath
		c.pending = append(c.pending, backupPath)
	}
	return out, nil
}

// PendingBackups returns backups queued for Cleanup.
func (c *Compactor) PendingBackups() []string {
	return append([]string(nil), c.pending...)
}

// Cleanup deletes backups of successful compactions. Already-missing backups
// are ignored. The queue is emptied even when some removals fail.
func (c *Compactor) Cleanup() error {
	var errs []error
	for _, p := range c.pending {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove backup %s: %w", p, err))
		}
	}
	c.pending = nil
	return errors.Join(errs...)
}

// copyFile copies src to dst, truncating dst and keeping src's permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
