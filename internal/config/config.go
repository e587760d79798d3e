package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/markstyle/internal/config/loader"
	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/smartstyle"
)

// Config holds every markstyle setting.
type Config struct {
	Logging  LoggingConfig          `yaml:"logging"`
	Editor   EditorConfig           `yaml:"editor"`
	Styles   map[string]StyleConfig `yaml:"styles"`
	Patterns PatternsConfig         `yaml:"patterns"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File switches output from stderr to a rotating log file.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"maxSize"` // megabytes
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"` // days
	Compress   bool   `yaml:"compress"`
}

// EditorConfig holds editing defaults.
type EditorConfig struct {
	Toggle bool `yaml:"toggle"`
	// LineEnding is "lf", "crlf", "cr", or "auto" to detect from content.
	LineEnding string `yaml:"lineEnding"`
}

// StyleConfig is one style rule.
type StyleConfig struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// PatternsConfig overrides the word class and trim tables.
type PatternsConfig struct {
	WordClass  string   `yaml:"wordClass"`
	WordGlyphs []string `yaml:"wordGlyphs"`
	TrimBefore []string `yaml:"trimBefore"`
	TrimAfter  []string `yaml:"trimAfter"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Editor: EditorConfig{
			Toggle:     true,
			LineEnding: "auto",
		},
		Styles: map[string]StyleConfig{},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer. Pass nil to skip it.
func WithEnv(env loader.Loader) Option {
	return func(o *options) {
		o.env = env
	}
}

// Load builds the configuration from defaults, the file at path (if path
// is non-empty) and the environment. A named file that doesn't exist is an
// error; an empty path skips the file layer.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if path != "" {
		if _, err := o.fs.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
		fl, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		file, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a layered settings map over c.
func (c *Config) apply(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "unknown log level", Value: c.Logging.Level}
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAge < 0 {
		return &ValidationError{Path: "logging", Message: "rotation limits must not be negative", Value: c.Logging}
	}

	if _, _, err := c.LineEnding(); err != nil {
		return err
	}

	for name, s := range c.Styles {
		if s.Prefix == "" || s.Suffix == "" {
			return &ValidationError{Path: "styles." + name, Message: "prefix and suffix are required", Value: s}
		}
	}

	if _, err := c.Smartstyle(); err != nil {
		return &ValidationError{Path: "patterns", Message: err.Error(), Value: c.Patterns, Err: err}
	}
	return nil
}

// LineEnding returns the configured line ending. auto is false when the
// ending should be detected from content.
func (c *Config) LineEnding() (le buffer.LineEnding, auto bool, err error) {
	name := strings.ToLower(c.Editor.LineEnding)
	if name == "" || name == "auto" {
		return buffer.LineEndingLF, true, nil
	}
	le, ok := buffer.ParseLineEnding(name)
	if !ok {
		return le, false, &ValidationError{Path: "editor.lineEnding", Message: "expected lf, crlf, cr or auto", Value: c.Editor.LineEnding}
	}
	return le, false, nil
}

// Smartstyle converts the settings into a transformer configuration.
func (c *Config) Smartstyle() (smartstyle.Config, error) {
	sc := smartstyle.DefaultConfig()

	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := c.Styles[name]
		rule := smartstyle.Rule{Name: name, Prefix: s.Prefix, Suffix: s.Suffix}
		replaced := false
		for i := range sc.Rules {
			if sc.Rules[i].Name == name {
				sc.Rules[i] = rule
				replaced = true
				break
			}
		}
		if !replaced {
			sc.Rules = append(sc.Rules, rule)
		}
	}

	p := c.Patterns
	if p.WordClass != "" {
		sc.WordClass = p.WordClass
	}
	if len(p.WordGlyphs) > 0 {
		sc.WordGlyphs = p.WordGlyphs
	}
	if len(p.TrimBefore) > 0 {
		sc.TrimBefore = p.TrimBefore
	}
	if len(p.TrimAfter) > 0 {
		sc.TrimAfter = p.TrimAfter
	}

	if err := sc.Validate(); err != nil {
		return smartstyle.Config{}, err
	}
	return sc, nil
}

// DefaultPath returns the first config file found in the user config
// directory, or "" when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, "markstyle", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
