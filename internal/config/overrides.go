// Environment and per-invocation overrides.
package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvConfigPath      = "SESSION_KEEPER_CONFIG"
	EnvMaxSizeKB       = "SESSION_KEEPER_MAX_SIZE_KB"
	EnvMaxLines        = "SESSION_KEEPER_MAX_LINES"
	EnvKeepMessages    = "SESSION_KEEPER_KEEP_MESSAGES"
	EnvKeepSystemLines = "SESSION_KEEPER_KEEP_SYSTEM_LINES"
	EnvEventLog        = "SESSION_KEEPER_EVENT_LOG"
	EnvLogLevel        = "SESSION_KEEPER_LOG_LEVEL"
)

// applyEnvOverrides applies SESSION_KEEPER_* variables to the config.
// Unparseable or out-of-range values are ignored with a warning.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvMaxSizeKB); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Thresholds.MaxSizeKB = f
		} else {
			warnEnv(EnvMaxSizeKB, v)
		}
	}

	envInt(EnvMaxLines, &c.Thresholds.MaxLines, 1)
	envInt(EnvKeepMessages, &c.Compression.KeepMessages, 0)
	envInt(EnvKeepSystemLines, &c.Compression.KeepSystemLines, 0)

	// SESSION_KEEPER_EVENT_LOG enables the event log at the given path
	if v := os.Getenv(EnvEventLog); v != "" {
		c.Monitoring.Events.Path = v
		c.Monitoring.Events.Enabled = true
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Monitoring.Log.Level = v
	}
}

func envInt(name string, dst *int, minimum int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minimum {
		warnEnv(name, v)
		return
	}
	*dst = n
}

func warnEnv(name, value string) {
	log.Warn().Str("var", name).Str("value", value).Msg("config: ignoring invalid environment override")
}

// Overrides are per-invocation values, normally from command-line flags.
// Nil fields leave the config unchanged.
type Overrides struct {
	MaxSizeKB       *float64
	MaxLines        *int
	KeepMessages    *int
	KeepSystemLines *int
	Backup          *bool
	EventLogPath    *string
}

// Apply writes the set overrides into c and validates the result.
func (o Overrides) Apply(c *Config) error {
	if o.MaxSizeKB != nil {
		c.Thresholds.MaxSizeKB = *o.MaxSizeKB
	}
	if o.MaxLines != nil {
		c.Thresholds.MaxLines = *o.MaxLines
	}
	if o.KeepMessages != nil {
		c.Compression.KeepMessages = *o.KeepMessages
	}
	if o.KeepSystemLines != nil {
		c.Compression.KeepSystemLines = *o.KeepSystemLines
	}
	if o.Backup != nil {
		c.Compression.Backup = *o.Backup
	}
	if o.EventLogPath != nil && *o.EventLogPath != "" {
		c.Monitoring.Events.Path = *o.EventLogPath
		c.Monitoring.Events.Enabled = true
	}
	return c.Validate()
}
