// Package config loads scr.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"scr/internal/dialect"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "scr.toml"

// Formats accepted by [tokenize].format.
var Formats = []string{"pretty", "json", "msgpack"}

type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path     string         `toml:"-"`
	Tokenize TokenizeConfig `toml:"tokenize"`
	Dialect  DialectConfig  `toml:"dialect"`
	Trace    TraceConfig    `toml:"trace"`
	Cache    CacheConfig    `toml:"cache"`
}

type TokenizeConfig struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"` // 0 = GOMAXPROCS
	Trivia         bool   `toml:"trivia"`
	Hints          bool   `toml:"hints"`
}

type DialectConfig struct {
	Default    string            `toml:"default"`
	Extensions map[string]string `toml:"extensions"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто = $XDG_CACHE_HOME/scr
}

// Default returns the settings used when no scr.toml exists.
func Default() Config {
	return Config{
		Tokenize: TokenizeConfig{
			Format:         "pretty",
			MaxDiagnostics: 100,
			Trivia:         true,
			Hints:          true,
		},
		Dialect: DialectConfig{Default: dialect.Default.String()},
		Trace:   TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Find walks from startDir to the filesystem root looking for scr.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds and loads scr.toml above startDir; without one it returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Tokenize.Format) {
		return fmt.Errorf("[tokenize].format: %q (expected: %s)", c.Tokenize.Format, strings.Join(Formats, "|"))
	}
	if c.Tokenize.MaxDiagnostics < 0 {
		return fmt.Errorf("[tokenize].max_diagnostics must be >= 0, got %d", c.Tokenize.MaxDiagnostics)
	}
	if c.Tokenize.Jobs < 0 {
		return fmt.Errorf("[tokenize].jobs must be >= 0, got %d", c.Tokenize.Jobs)
	}
	if _, err := c.Classifier(); err != nil {
		return err
	}
	return nil
}

// Classifier builds the path classifier from [dialect].
func (c Config) Classifier() (dialect.Classifier, error) {
	def, err := dialect.Parse(c.Dialect.Default)
	if err != nil {
		return dialect.Classifier{}, fmt.Errorf("[dialect].default: %w", err)
	}
	cl := dialect.Classifier{Default: def}
	if len(c.Dialect.Extensions) == 0 {
		return cl, nil
	}
	cl.Extensions = make(map[string]dialect.Syntax, len(c.Dialect.Extensions))
	for ext, name := range c.Dialect.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return dialect.Classifier{}, fmt.Errorf("[dialect.extensions]: %q must start with a dot", ext)
		}
		s, err := dialect.Parse(name)
		if err != nil {
			return dialect.Classifier{}, fmt.Errorf("[dialect.extensions].%q: %w", ext, err)
		}
		cl.Extensions[strings.ToLower(ext)] = s
	}
	return cl, nil
}
