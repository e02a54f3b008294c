package main

import (
	"fmt"
	"io"
	"os"

	"github.com/compresr/session-keeper/internal/config"
	"github.com/compresr/session-keeper/internal/discovery"
	"github.com/compresr/session-keeper/internal/tui"
)

// runTools lists configured tools and whether their session directory exists.
func runTools(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("tools", stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, source, err := loadConfig(common, fs, thresholdFlags{}, config.Overrides{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p := tui.NewPrinter(stdout, false)
	p.PrintInfo("Config: " + source)

	finder := discovery.New(cfg.Tools)
	for _, name := range finder.Tools() {
		dir, _ := finder.Dir(name)
		info, err := os.Stat(dir)
		p.PrintTool(name, dir, err == nil && info.IsDir())
	}
	return 0
}
