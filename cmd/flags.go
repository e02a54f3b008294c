package main

import (
	"flag"
	"io"

	"github.com/compresr/session-keeper/internal/config"
)

// commonFlags are shared by commands that load configuration.
type commonFlags struct {
	configPath string
	debug      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to config file")
	fs.StringVar(&c.configPath, "c", "", "path to config file (shorthand)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&c.debug, "d", false, "enable debug logging (shorthand)")
}

// thresholdFlags override thresholds from the config file.
type thresholdFlags struct {
	maxSizeKB float64
	maxLines  int
}

func (t *thresholdFlags) register(fs *flag.FlagSet) {
	fs.Float64Var(&t.maxSizeKB, "max-size", config.DefaultMaxSizeKB, "size threshold in KB")
	fs.IntVar(&t.maxLines, "max-lines", config.DefaultMaxLines, "line threshold")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// setFlags returns the names of flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
