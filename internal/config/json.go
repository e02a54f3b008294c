// CONFIG.json support.
//
// DESIGN: CONFIG.json uses camelCase keys (thresholds.maxSizeKB,
// compression.keepMessages, ...). snake_case spellings of the YAML file are
// accepted too. Keys are looked up individually with gjson so a file may set
// any subset; everything else keeps its default.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// LoadJSON parses configuration from raw CONFIG.json bytes.
func LoadJSON(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))
	if !gjson.Valid(expanded) {
		return nil, fmt.Errorf("%w: failed to parse config file: malformed JSON", ErrConfigInvalid)
	}

	root := gjson.Parse(expanded)
	cfg := DefaultConfig()

	if err := applyJSON(root, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return cfg, nil
}

func applyJSON(root gjson.Result, cfg *Config) error {
	if v, ok := lookup(root, "thresholds.maxSizeKB", "thresholds.max_size_kb"); ok {
		if v.Type != gjson.Number {
			return fmt.Errorf("thresholds.maxSizeKB must be a number")
		}
		cfg.Thresholds.MaxSizeKB = v.Float()
	}

	ints := []struct {
		dst   *int
		paths []string
	}{
		{&cfg.Thresholds.MaxLines, []string{"thresholds.maxLines", "thresholds.max_lines"}},
		{&cfg.Compression.KeepMessages, []string{"compression.keepMessages", "compression.keep_messages"}},
		{&cfg.Compression.KeepSystemLines, []string{"compression.keepSystemLines", "compression.keep_system_lines"}},
	}
	for _, f := range ints {
		v, ok := lookup(root, f.paths...)
		if !ok {
			continue
		}
		if v.Type != gjson.Number {
			return fmt.Errorf("%s must be a number", f.paths[0])
		}
		*f.dst = int(v.Int())
	}

	if v, ok := lookup(root, "compression.backup"); ok {
		cfg.Compression.Backup = v.Bool()
	}

	// tools: {"name": "dir"} or {"name": {"sessionDir": "dir"}}
	root.Get("tools").ForEach(func(key, value gjson.Result) bool {
		dir := value.String()
		if value.IsObject() {
			d, _ := lookup(value, "sessionDir", "session_dir", "path")
			dir = d.String()
		}
		cfg.Tools[key.String()] = dir
		return true
	})

	strs := []struct {
		dst   *string
		paths []string
	}{
		{&cfg.Monitoring.Log.Level, []string{"monitoring.log.level"}},
		{&cfg.Monitoring.Log.Format, []string{"monitoring.log.format"}},
		{&cfg.Monitoring.Log.Output, []string{"monitoring.log.output"}},
		{&cfg.Monitoring.Events.Path, []string{"monitoring.events.path"}},
	}
	for _, f := range strs {
		if v, ok := lookup(root, f.paths...); ok {
			*f.dst = v.String()
		}
	}
	if v, ok := lookup(root, "monitoring.events.enabled"); ok {
		cfg.Monitoring.Events.Enabled = v.Bool()
	}

	return nil
}

// lookup returns the first path that exists.
func lookup(root gjson.Result, paths ...string) (gjson.Result, bool) {
	for _, p := range paths {
		if v := root.Get(p); v.Exists() {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// JSON renders the configuration in CONFIG.json layout.
func (c *Config) JSON() ([]byte, error) {
	out := []byte("{}")
	var err error
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}

	set("thresholds.maxSizeKB", c.Thresholds.MaxSizeKB)
	set("thresholds.maxLines", c.Thresholds.MaxLines)
	set("compression.keepMessages", c.Compression.KeepMessages)
	set("compression.keepSystemLines", c.Compression.KeepSystemLines)
	set("compression.backup", c.Compression.Backup)

	names := make([]string, 0, len(c.Tools))
	for name := range c.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		set("tools."+escapePath(name), c.Tools[name])
	}

	set("monitoring.log.level", c.Monitoring.Log.Level)
	set("monitoring.log.format", c.Monitoring.Log.Format)
	set("monitoring.log.output", c.Monitoring.Log.Output)
	set("monitoring.events.enabled", c.Monitoring.Events.Enabled)
	set("monitoring.events.path", c.Monitoring.Events.Path)

	if err != nil {
		return nil, fmt.Errorf("render config json: %w", err)
	}
	return pretty.Pretty(out), nil
}

// escapePath escapes gjson/sjson path metacharacters in a key.
func escapePath(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}
