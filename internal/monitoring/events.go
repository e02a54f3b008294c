// Compaction event logging.
//
// Writes one JSON object per line to a dedicated file so past runs can be
// audited. Every event carries the run ID of the batch that produced it.
package monitoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names.
const (
	EventRunStarted       = "run_started"
	EventSessionCompacted = "session_compacted"
	EventSessionSkipped   = "session_skipped"
	EventSessionError     = "session_error"
	EventRunComplete      = "run_complete"
)

// Event represents a log entry.
type Event struct {
	Timestamp     string         `json:"timestamp"`
	RunID         string         `json:"run_id"`
	Event         string         `json:"event"`
	Session       string         `json:"session,omitempty"`
	Tool          string         `json:"tool,omitempty"`
	OriginalLines int            `json:"original_lines,omitempty"`
	RetainedLines int            `json:"retained_lines,omitempty"`
	OriginalBytes int64          `json:"original_bytes,omitempty"`
	RetainedBytes int64          `json:"retained_bytes,omitempty"`
	Error         string         `json:"error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// EventLog appends events to a JSONL file. A nil *EventLog discards events.
type EventLog struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	runID string
}

// OpenEventLog opens (or creates) the event log at path.
// A path without the .jsonl extension is treated as a directory.
func OpenEventLog(path string) (*EventLog, error) {
	if filepath.Ext(path) != ".jsonl" {
		path = filepath.Join(path, "events.jsonl")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create event log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	return &EventLog{file: file, path: path, runID: uuid.New().String()}, nil
}

// Path returns the log file path.
func (l *EventLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID returns the ID stamped on every event of this run.
func (l *EventLog) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Log writes an event to the log file.
func (l *EventLog) Log(event Event) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	event.RunID = l.runID

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// LogRunStarted logs the settings a run starts with.
func (l *EventLog) LogRunStarted(mode string, details map[string]any) error {
	if details == nil {
		details = make(map[string]any)
	}
	details["mode"] = mode
	return l.Log(Event{Event: EventRunStarted, Details: details})
}

// LogRunComplete logs the final run statistics.
func (l *EventLog) LogRunComplete(stats *RunStats) error {
	details := make(map[string]any)
	for k, v := range stats.Stats() {
		details[k] = v
	}
	return l.Log(Event{Event: EventRunComplete, Details: details})
}

// LogError logs a per-session failure.
func (l *EventLog) LogError(session, tool string, err error) error {
	return l.Log(Event{Event: EventSessionError, Session: session, Tool: tool, Error: err.Error()})
}

// Close closes the log file.
func (l *EventLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}
