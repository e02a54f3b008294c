// Package session reads session log files from disk.
//
// DESIGN: A session is an append-only JSONL file written by an AI coding CLI.
// Lines are opaque text; blank lines are dropped when counting and retaining.
// Nothing is cached between calls - every Read hits the filesystem.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// Extension is the file extension recognized as a session log.
const Extension = ".jsonl"

// ErrNotFound is returned when the session path does not exist.
var ErrNotFound = errors.New("session not found")

// File is a snapshot of a session file taken by Read.
type File struct {
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	Lines        []string  `json:"-"`
	LastModified time.Time `json:"last_modified"`
}

// LineCount returns the number of non-blank lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// SizeKB returns the file size in kilobytes.
func (f *File) SizeKB() float64 {
	return float64(f.SizeBytes) / 1024
}

// Stat returns size and mtime without reading content.
func Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return info, nil
}

// Read loads a session file in full.
func Read(path string) (*File, error) {
	info, err := Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &File{
		Path:         path,
		SizeBytes:    info.Size(),
		Lines:        SplitLines(string(data)),
		LastModified: info.ModTime(),
	}, nil
}

// SplitLines splits content on '\n' and drops lines that are empty after
// trimming whitespace. Kept lines are returned untrimmed.
func SplitLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// JoinLines renders lines back into file content with a trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// IsSessionFile reports whether name has the session extension.
func IsSessionFile(name string) bool {
	return strings.HasSuffix(name, Extension)
}
