// Package monitoring - types.go defines config types shared with internal/config.
package monitoring

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// EventLogConfig contains event log configuration.
type EventLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // JSONL file; directories get events.jsonl appended
}
