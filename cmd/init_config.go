package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/compresr/session-keeper/internal/config"
)

// runInitConfig writes the default configuration as YAML or CONFIG.json.
func runInitConfig(args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet("init-config", stderr)
	format := flags.String("format", "yaml", "output format: yaml or json")
	out := flags.String("out", "", "output file (default: stdout)")
	overwrite := flags.Bool("overwrite", false, "replace an existing file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	data, err := renderDefaultConfig(*format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *out == "" {
		_, _ = stdout.Write(data)
		return 0
	}

	path := expandHome(*out)
	if _, err := os.Stat(path); err == nil && !*overwrite {
		fmt.Fprintf(stderr, "Error: %s already exists (use --overwrite)\n", path)
		return 1
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return 0
}

// renderDefaultConfig returns the default config in the requested format.
func renderDefaultConfig(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return getEmbeddedConfig("default")
	case "json":
		return config.DefaultConfig().JSON()
	default:
		return nil, fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
