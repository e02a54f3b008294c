// Monitoring configuration - logging and event log settings.
//
// DESIGN: Separates logging (zerolog, for operators) from the event log
// (JSONL, one line per compacted/skipped/failed session, for auditing).
package config

import "github.com/compresr/session-keeper/internal/monitoring"

// MonitoringConfig contains all monitoring settings.
type MonitoringConfig struct {
	Log    monitoring.LoggerConfig   `yaml:"log"`
	Events monitoring.EventLogConfig `yaml:"events"`
}
