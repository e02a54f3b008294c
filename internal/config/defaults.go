// Default configuration values.
//
// This file contains ONLY data - no logic/helpers.
package config

import "github.com/compresr/session-keeper/internal/monitoring"

// =============================================================================
// DEFAULT LIMITS
// =============================================================================

const (
	DefaultMaxSizeKB       = 500.0
	DefaultMaxLines        = 300
	DefaultKeepMessages    = 100
	DefaultKeepSystemLines = 5
)

// DefaultEventLogPath is where the event log goes when enabled without a path.
const DefaultEventLogPath = "~/.config/session-keeper/events.jsonl"

// =============================================================================
// DEFAULT TOOL TABLE
// =============================================================================

// DefaultTools maps each supported CLI to its session directory.
var DefaultTools = map[string]string{
	"aider":       "~/.aider/sessions",
	"claude-code": "~/.claude/sessions",
	"codex":       "~/.codex/sessions",
	"cursor":      "~/.cursor/sessions",
	"gemini-cli":  "~/.gemini-cli/sessions",
	"openclaw":    "~/.openclaw/agents/main/sessions",
	"opencode":    "~/.opencode/sessions",
}

// =============================================================================
// DEFAULT CONFIG
// =============================================================================

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	tools := make(map[string]string, len(DefaultTools))
	for name, dir := range DefaultTools {
		tools[name] = dir
	}

	return &Config{
		Thresholds: ThresholdsConfig{
			MaxSizeKB: DefaultMaxSizeKB,
			MaxLines:  DefaultMaxLines,
		},
		Compression: CompressionConfig{
			KeepMessages:    DefaultKeepMessages,
			KeepSystemLines: DefaultKeepSystemLines,
			Backup:          true,
		},
		Tools: tools,
		Monitoring: MonitoringConfig{
			Log: monitoring.LoggerConfig{
				Level:  "info",
				Format: "console",
				Output: "stderr",
			},
			Events: monitoring.EventLogConfig{
				Enabled: false,
				Path:    DefaultEventLogPath,
			},
		},
	}
}
