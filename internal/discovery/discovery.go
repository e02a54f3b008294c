// Package discovery locates session files for known AI coding tools.
//
// DESIGN: The tool table (name -> directory) is injected by the caller,
// normally from config. Nothing here is hard-coded to the user's home so
// tests can point tools at temp directories.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/session"
)

// ErrUnknownTool is returned when a tool name is not in the table.
var ErrUnknownTool = errors.New("unknown tool")

// CustomTool tags sessions given by explicit path.
const CustomTool = "custom"

// Session is a discovered session file and the tool that owns it.
type Session struct {
	Path string
	Tool string
}

// Finder enumerates session files from a tool table.
type Finder struct {
	tools map[string]string
	home  string
}

// New creates a Finder over the given tool -> directory table.
// Directories may start with "~", which expands to the user's home.
func New(tools map[string]string) *Finder {
	home, _ := os.UserHomeDir()
	return NewWithHome(tools, home)
}

// NewWithHome is New with an explicit home directory for "~" expansion.
func NewWithHome(tools map[string]string, home string) *Finder {
	table := make(map[string]string, len(tools))
	for name, dir := range tools {
		table[name] = dir
	}
	return &Finder{tools: table, home: home}
}

// Tools returns configured tool names in sorted order.
func (f *Finder) Tools() []string {
	names := make([]string, 0, len(f.tools))
	for name := range f.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dir returns the expanded directory for a tool.
func (f *Finder) Dir(tool string) (string, bool) {
	dir, ok := f.tools[tool]
	if !ok {
		return "", false
	}
	return ExpandPath(dir, f.home), true
}

// Find lists sessions for one tool.
// An unknown tool logs a warning and returns an empty list wrapped around
// ErrUnknownTool so callers can record it. A missing directory is not an error.
func (f *Finder) Find(tool string) ([]Session, error) {
	dir, ok := f.Dir(tool)
	if !ok {
		log.Warn().Str("tool", tool).Strs("known", f.Tools()).Msg("discovery: unknown tool")
		return []Session{}, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}

	paths, err := listSessions(dir)
	if err != nil {
		return []Session{}, err
	}

	sessions := make([]Session, 0, len(paths))
	for _, p := range paths {
		sessions = append(sessions, Session{Path: p, Tool: tool})
	}
	return sessions, nil
}

// FindAll lists sessions across every configured tool, in tool-name order.
// Directories that cannot be listed are logged and skipped.
func (f *Finder) FindAll() []Session {
	var all []Session
	for _, tool := range f.Tools() {
		sessions, err := f.Find(tool)
		if err != nil {
			log.Warn().Err(err).Str("tool", tool).Msg("discovery: skipping tool")
			continue
		}
		all = append(all, sessions...)
	}
	return all
}

// listSessions returns sorted *.jsonl regular files in dir.
// A missing directory yields an empty result.
func listSessions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("dir", dir).Msg("discovery: session directory not found")
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !session.IsSessionFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ExpandPath replaces a leading "~" with home.
func ExpandPath(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		return filepath.Join(home, p[2:])
	}
	return p
}
