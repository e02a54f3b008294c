// Package config loads and validates the session-keeper configuration.
//
// DESIGN: Configuration is optional. Missing, malformed or invalid files
// fall back to built-in defaults with a warning; the run never fails on
// config. Precedence is flags > SESSION_KEEPER_* env > file > defaults.
//
// FILES:
//   - config.go:     Root Config struct, Load(), Validate()
//   - defaults.go:   Default values and the default tool table
//   - json.go:       CONFIG.json reading (gjson) and writing (sjson)
//   - monitoring.go: Logging and event log settings
//   - overrides.go:  Env and per-invocation overrides
//   - resolve.go:    Config file search and fallback
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/compresr/session-keeper/internal/compactor"
	"github.com/compresr/session-keeper/internal/health"
)

// ErrConfigInvalid marks a config file that could not be used.
var ErrConfigInvalid = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Thresholds  ThresholdsConfig  `yaml:"thresholds"`  // Hard limits
	Compression CompressionConfig `yaml:"compression"` // Retention window
	Tools       map[string]string `yaml:"tools"`       // Tool name -> session directory
	Monitoring  MonitoringConfig  `yaml:"monitoring"`  // Logging and event log
}

// ThresholdsConfig contains the limits a session must stay under.
type ThresholdsConfig struct {
	MaxSizeKB float64 `yaml:"max_size_kb"` // Size limit in KB
	MaxLines  int     `yaml:"max_lines"`   // Non-blank line limit
}

// CompressionConfig controls what compaction keeps.
type CompressionConfig struct {
	KeepMessages    int  `yaml:"keep_messages"`     // Trailing lines kept
	KeepSystemLines int  `yaml:"keep_system_lines"` // Leading lines kept
	Backup          bool `yaml:"backup"`            // Write <session>.backup before compacting
}

// HealthThresholds returns the health thresholds.
func (c *Config) HealthThresholds() health.Thresholds {
	return health.Thresholds{MaxSizeKB: c.Thresholds.MaxSizeKB, MaxLines: c.Thresholds.MaxLines}
}

// RetentionPolicy returns the retention policy.
func (c *Config) RetentionPolicy() compactor.Policy {
	return compactor.Policy{
		KeepSystemLines: c.Compression.KeepSystemLines,
		KeepMessages:    c.Compression.KeepMessages,
	}
}

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

// Load reads configuration from a YAML or JSON file, chosen by extension.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(data)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", ErrConfigInvalid, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return cfg, nil
}

// normalize drops tools whose directory was blanked out.
func (c *Config) normalize() {
	for name, dir := range c.Tools {
		if strings.TrimSpace(dir) == "" {
			delete(c.Tools, name)
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Thresholds.MaxSizeKB <= 0 {
		return fmt.Errorf("thresholds.max_size_kb must be positive, got %v", c.Thresholds.MaxSizeKB)
	}
	if c.Thresholds.MaxLines <= 0 {
		return fmt.Errorf("thresholds.max_lines must be positive, got %d", c.Thresholds.MaxLines)
	}
	if c.Compression.KeepMessages < 0 {
		return fmt.Errorf("compression.keep_messages must not be negative, got %d", c.Compression.KeepMessages)
	}
	if c.Compression.KeepSystemLines < 0 {
		return fmt.Errorf("compression.keep_system_lines must not be negative, got %d", c.Compression.KeepSystemLines)
	}
	if c.Monitoring.Events.Enabled && c.Monitoring.Events.Path == "" {
		return fmt.Errorf("monitoring.events.path is required when events are enabled")
	}
	return nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
