package compactor

import (
	"errors"

	"github.com/compresr/session-keeper/internal/session"
)

// Error kinds. Each is wrapped with the session path; match with errors.Is.
var (
	ErrNotFound     = session.ErrNotFound
	ErrBackupFailed = errors.New("backup failed")
	ErrWriteFailed  = errors.New("compression failed")
	ErrRestore      = errors.New("restore from backup failed")
)
