package main

import (
	"flag"

	"github.com/compresr/session-keeper/internal/config"
)

// loadConfig resolves the config file, applies flag overrides, and
// configures logging. Threshold flags count only when given explicitly.
// An error means the flags themselves are invalid.
func loadConfig(common commonFlags, fs *flag.FlagSet, t thresholdFlags, o config.Overrides) (*config.Config, string, error) {
	// Log config problems before the configured logger exists.
	setupLogging(config.DefaultConfig().Monitoring.Log, common.debug)

	cfg, source := config.Resolve(common.configPath)

	set := setFlags(fs)
	if set["max-size"] {
		o.MaxSizeKB = &t.maxSizeKB
	}
	if set["max-lines"] {
		o.MaxLines = &t.maxLines
	}
	if err := o.Apply(cfg); err != nil {
		return nil, "", err
	}

	setupLogging(cfg.Monitoring.Log, common.debug)
	return cfg, source, nil
}
