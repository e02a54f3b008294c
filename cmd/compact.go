package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/compactor"
	"github.com/compresr/session-keeper/internal/config"
	"github.com/compresr/session-keeper/internal/discovery"
	"github.com/compresr/session-keeper/internal/monitoring"
	"github.com/compresr/session-keeper/internal/tui"
)

// runCompact trims sessions to the retention window.
func runCompact(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("compact", stderr)
	var (
		common          commonFlags
		thresholds      thresholdFlags
		sessionArg      string
		tool            string
		all             bool
		keepMessages    int
		keepSystemLines int
		noBackup        bool
		keepBackup      bool
		force           bool
		eventLog        string
	)
	common.register(fs)
	thresholds.register(fs)
	fs.StringVar(&sessionArg, "session", "", "session file to compact")
	fs.StringVar(&sessionArg, "s", "", "session file to compact (shorthand)")
	fs.StringVar(&tool, "tool", "", "compact sessions of one tool")
	fs.StringVar(&tool, "t", "", "compact sessions of one tool (shorthand)")
	fs.BoolVar(&all, "compress-all", false, "compact sessions of every tool")
	fs.BoolVar(&all, "all", false, "compact sessions of every tool")
	fs.IntVar(&keepMessages, "keep-messages", config.DefaultKeepMessages, "trailing lines to keep")
	fs.IntVar(&keepMessages, "m", config.DefaultKeepMessages, "trailing lines to keep (shorthand)")
	fs.IntVar(&keepSystemLines, "keep-system", config.DefaultKeepSystemLines, "leading lines to keep")
	fs.BoolVar(&noBackup, "no-backup", false, "do not back up sessions before writing")
	fs.BoolVar(&keepBackup, "keep-backup", false, "leave backups on disk after the run")
	fs.BoolVar(&force, "force", false, "compact even when within limits")
	fs.BoolVar(&force, "f", false, "compact even when within limits (shorthand)")
	fs.StringVar(&eventLog, "event-log", "", "append run events to this JSONL file")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 2
	}
	if sessionArg == "" && len(positional) > 0 {
		sessionArg = positional[0]
	}

	var o config.Overrides
	set := setFlags(fs)
	if set["keep-messages"] || set["m"] {
		o.KeepMessages = &keepMessages
	}
	if set["keep-system"] {
		o.KeepSystemLines = &keepSystemLines
	}
	if noBackup {
		backup := false
		o.Backup = &backup
	}
	if eventLog != "" {
		o.EventLogPath = &eventLog
	}

	cfg, source, err := loadConfig(common, fs, thresholds, o)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p := tui.NewPrinter(stdout, false)
	p.PrintHeader("Session Keeper - Session Compressor")
	p.PrintCompactSettings(tui.CompactSettings{
		MaxSizeKB:       cfg.Thresholds.MaxSizeKB,
		MaxLines:        cfg.Thresholds.MaxLines,
		KeepMessages:    cfg.Compression.KeepMessages,
		KeepSystemLines: cfg.Compression.KeepSystemLines,
		Backup:          cfg.Compression.Backup,
		Force:           force,
		ConfigSource:    source,
	})

	finder := discovery.New(cfg.Tools)
	var (
		targets []discovery.Session
		mode    string
	)
	switch {
	case sessionArg != "":
		mode = "session"
		targets = []discovery.Session{{Path: expandHome(sessionArg), Tool: discovery.CustomTool}}
	case all:
		mode = "all"
		targets = finder.FindAll()
		if len(targets) == 0 {
			p.PrintLine("No sessions found to compress.")
			return 0
		}
		p.PrintLine("Found %s to check", tui.Sessions(len(targets)))
	case tool != "":
		mode = "tool"
		targets, err = finder.Find(tool)
		if errors.Is(err, discovery.ErrUnknownTool) {
			p.PrintWarn(fmt.Sprintf("Unknown tool: %s", tool))
		} else if err != nil {
			p.PrintError(err.Error())
		}
		if len(targets) == 0 {
			p.PrintLine("No sessions found for tool: %s", tool)
			return 0
		}
		p.PrintLine("Found %s for %s", tui.Sessions(len(targets)), tool)
	default:
		p.PrintLine("No action specified. Use one of:")
		p.PrintLine("  %s compact <session-file>", binaryName)
		p.PrintLine("  %s compact --compress-all", binaryName)
		p.PrintLine("  %s compact --tool <tool-name>", binaryName)
		p.PrintLine("")
		p.PrintLine("Run %s help for more options.", binaryName)
		return 0
	}

	events := openEventLog(cfg)
	defer events.Close()
	if err := events.LogRunStarted(mode, map[string]any{
		"config":            source,
		"force":             force,
		"keep_messages":     cfg.Compression.KeepMessages,
		"keep_system_lines": cfg.Compression.KeepSystemLines,
		"sessions":          len(targets),
	}); err != nil {
		log.Warn().Err(err).Str("path", events.Path()).Msg("compact: failed to write event")
	}

	c := compactor.New(compactor.Options{
		Policy:     cfg.RetentionPolicy(),
		Thresholds: cfg.HealthThresholds(),
		Force:      force,
		Backup:     cfg.Compression.Backup,
	})
	runner := compactor.NewRunner(c,
		compactor.WithReporter(p),
		compactor.WithEventLog(events),
		compactor.WithKeepBackups(keepBackup),
	)

	stats, err := runner.Run(ctx, targets)
	p.PrintRunSummary(stats)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openEventLog opens the configured event log. Failures are logged and the
// run continues without one.
func openEventLog(cfg *config.Config) *monitoring.EventLog {
	if !cfg.Monitoring.Events.Enabled {
		return nil
	}
	events, err := monitoring.OpenEventLog(expandHome(cfg.Monitoring.Events.Path))
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Monitoring.Events.Path).Msg("compact: event log disabled")
		return nil
	}
	log.Debug().Str("path", events.Path()).Str("run_id", events.RunID()).Msg("compact: event log opened")
	return events
}
