package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/config"
	"github.com/compresr/session-keeper/internal/discovery"
	"github.com/compresr/session-keeper/internal/health"
	"github.com/compresr/session-keeper/internal/tui"
)

// runCheck reports the health of sessions.
func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("check", stderr)
	var (
		common     commonFlags
		thresholds thresholdFlags
		sessionArg string
		tool       string
		verbose    bool
	)
	common.register(fs)
	thresholds.register(fs)
	fs.StringVar(&sessionArg, "session", "", "session file to check")
	fs.StringVar(&sessionArg, "s", "", "session file to check (shorthand)")
	fs.StringVar(&tool, "tool", "", "check sessions of one tool")
	fs.StringVar(&tool, "t", "", "check sessions of one tool (shorthand)")
	fs.BoolVar(&verbose, "verbose", false, "also show healthy sessions")
	fs.BoolVar(&verbose, "v", false, "also show healthy sessions (shorthand)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 2
	}
	if sessionArg == "" && len(positional) > 0 {
		sessionArg = positional[0]
	}

	cfg, source, err := loadConfig(common, fs, thresholds, config.Overrides{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p := tui.NewPrinter(stdout, verbose)
	p.PrintHeader("Session Keeper - Session Health Check")
	log.Debug().Str("config", source).Msg("check: configuration loaded")

	finder := discovery.New(cfg.Tools)
	var targets []discovery.Session
	switch {
	case sessionArg != "":
		targets = []discovery.Session{{Path: expandHome(sessionArg), Tool: discovery.CustomTool}}
	case tool != "":
		targets, err = finder.Find(tool)
		if errors.Is(err, discovery.ErrUnknownTool) {
			p.PrintWarn(fmt.Sprintf("Unknown tool: %s", tool))
		} else if err != nil {
			p.PrintError(err.Error())
		}
	default:
		targets = finder.FindAll()
	}

	reports, summary, err := health.CheckAll(ctx, targets, cfg.HealthThresholds())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if len(reports) == 0 {
		p.PrintLine("No sessions found.")
		return 0
	}

	p.PrintLine("Checking %s...", tui.Sessions(len(reports)))
	for _, r := range reports {
		p.PrintHealth(r)
	}
	p.PrintHealthSummary(summary, binaryName+" compact --compress-all")
	return 0
}

// expandHome expands a leading "~" in a user-supplied path.
func expandHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return discovery.ExpandPath(p, home)
}
