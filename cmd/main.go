// Package main is the entry point for session-keeper.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/compresr/session-keeper/internal/monitoring"
)

// Version is set at build time via ldflags
var Version = "v0.1.0"

const binaryName = "session-keeper"

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	// Try loading from ~/.config/session-keeper/.env first
	configEnv := filepath.Join(homeDir, ".config", binaryName, ".env")
	if _, err := os.Stat(configEnv); err == nil {
		_ = godotenv.Load(configEnv)
	}

	// Also load local .env (godotenv never overrides variables already set)
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}

func main() {
	loadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stdout)
		return 0
	}

	switch args[0] {
	case "check", "health":
		return runCheck(ctx, args[1:], stdout, stderr)
	case "compact", "compress":
		return runCompact(ctx, args[1:], stdout, stderr)
	case "init-config":
		return runInitConfig(args[1:], stdout, stderr)
	case "tools":
		return runTools(args[1:], stdout, stderr)
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "%s %s\n", binaryName, Version)
		fmt.Fprintf(stdout, "Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return 0
	case "help", "-h", "--help":
		printHelp(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printHelp(stderr)
		return 2
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg monitoring.LoggerConfig, debug bool) {
	if debug {
		cfg.Level = zerolog.LevelDebugValue
	}
	monitoring.Global(cfg)
	log.Debug().Str("output", cfg.Output).Msg("logging configured")
}

// printHelp prints usage information
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "session-keeper - keep AI coding CLI session logs small")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  session-keeper <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check        Report session health")
	fmt.Fprintln(w, "  compact      Trim sessions to the retention window")
	fmt.Fprintln(w, "  init-config  Write the default configuration")
	fmt.Fprintln(w, "  tools        List known tools and their session directories")
	fmt.Fprintln(w, "  version      Print version information")
	fmt.Fprintln(w, "  help         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Options:")
	fmt.Fprintln(w, "  -s, --session FILE   Check one session file")
	fmt.Fprintln(w, "  -t, --tool NAME      Check sessions of one tool")
	fmt.Fprintln(w, "  -v, --verbose        Also show healthy sessions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compact Options:")
	fmt.Fprintln(w, "  FILE, -s FILE        Compact one session file")
	fmt.Fprintln(w, "  --compress-all       Compact sessions of every tool")
	fmt.Fprintln(w, "  -t, --tool NAME      Compact sessions of one tool")
	fmt.Fprintln(w, "  -m, --keep-messages N  Trailing lines to keep")
	fmt.Fprintln(w, "  --keep-system N      Leading lines to keep")
	fmt.Fprintln(w, "  --max-size KB        Size threshold")
	fmt.Fprintln(w, "  --max-lines N        Line threshold")
	fmt.Fprintln(w, "  -f, --force          Compact even when within limits")
	fmt.Fprintln(w, "  --no-backup          Do not write <session>.backup")
	fmt.Fprintln(w, "  --keep-backup        Leave backups on disk after the run")
	fmt.Fprintln(w, "  --event-log PATH     Append run events to a JSONL file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common Options:")
	fmt.Fprintln(w, "  -c, --config FILE    Config file (YAML, or JSON with .json extension)")
	fmt.Fprintln(w, "  -d, --debug          Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  session-keeper check")
	fmt.Fprintln(w, "  session-keeper compact ~/.claude/sessions/abc.jsonl --keep-messages 50")
	fmt.Fprintln(w, "  session-keeper compact --tool codex --force")
}
