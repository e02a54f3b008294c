// Config file search and fallback.
package config

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultsSource is the source name reported when no file was used.
const DefaultsSource = "(defaults)"

// SearchPaths returns the config locations checked in order of preference.
func SearchPaths(home string) []string {
	var paths []string
	if home != "" {
		dir := filepath.Join(home, ".config", "session-keeper")
		paths = append(paths,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "CONFIG.json"),
		)
	}
	return append(paths, "config.yaml", "CONFIG.json")
}

// Resolve finds and loads the config for this run.
// Checks: user flag -> $SESSION_KEEPER_CONFIG -> search paths -> defaults.
// It never fails; problems are logged and defaults are used instead.
// Returns the config and a description of its source.
func Resolve(userPath string) (*Config, string) {
	home, _ := os.UserHomeDir()
	return ResolveFrom(userPath, SearchPaths(home))
}

// ResolveFrom is Resolve with an explicit search list.
func ResolveFrom(userPath string, searchPaths []string) (*Config, string) {
	if userPath == "" {
		userPath = os.Getenv(EnvConfigPath)
	}

	candidates := searchPaths
	explicit := userPath != ""
	if explicit {
		candidates = []string{userPath}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				log.Warn().Err(err).Str("config", path).Msg("config: file not found, using defaults")
			}
			continue
		}

		cfg, err := Load(path)
		if err != nil {
			log.Warn().Err(err).Str("config", path).Msg("config: could not load, using defaults")
			return defaults(), DefaultsSource
		}
		cfg.applyEnvOverrides()
		return cfg, path
	}

	return defaults(), DefaultsSource
}

func defaults() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	return cfg
}
