// Package config loads tagpick settings.
//
// Precedence, highest first: command-line flags (applied by the caller),
// TAGPICK_* environment variables, the YAML config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"

	"github.com/ruminaider/tagpick/internal/logging"
	"github.com/ruminaider/tagpick/internal/paths"
)

const (
	envPrefix         = "TAGPICK_"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Output formats for the submitted value.
const (
	OutputValue = "value" // bare serialized value
	OutputForm  = "form"  // name=value, URL-encoded
	OutputJSON  = "json"  // {"name":..., "value":..., "keys":[...]}
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Config holds picker settings.
type Config struct {
	Name        string    `koanf:"name"`
	Placeholder string    `koanf:"placeholder"`
	EmptyText   string    `koanf:"empty_text"`
	MaxRows     int       `koanf:"max_rows"`
	Width       int       `koanf:"width"`
	Locale      string    `koanf:"locale"`
	Output      string    `koanf:"output"`
	Confirm     bool      `koanf:"confirm"`
	Log         LogConfig `koanf:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path and then applies environment overrides.
// An empty path means paths.ConfigFile(), which may be absent. An explicit
// path must exist. The result is not validated: callers apply their flags
// first and then call Validate.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = paths.ConfigFile()
	}

	content, err := readConfigFile(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) && !explicit {
			content = nil
		} else {
			return nil, err
		}
	}
	return load(content, true)
}

// Parse parses and validates YAML config bytes without environment
// overrides.
func Parse(data []byte) (*Config, error) {
	cfg, err := load(data, false)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(content []byte, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if withEnv {
		if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("loading environment variables: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// envKey maps TAGPICK_MAX_ROWS to max_rows and TAGPICK_LOG_LEVEL to
// log.level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return content, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Placeholder == "" {
		cfg.Placeholder = "Type to filter…"
	}
	if cfg.EmptyText == "" {
		cfg.EmptyText = "No matches for %q"
	}
	if cfg.MaxRows == 0 {
		cfg.MaxRows = 8
	}
	if cfg.Output == "" {
		cfg.Output = OutputValue
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if err := c.ValidateOutput(); err != nil {
		return err
	}
	return c.ValidateSettings()
}

// ValidateOutput checks the output format and its field name.
func (c *Config) ValidateOutput() error {
	switch c.Output {
	case OutputValue:
	case OutputForm, OutputJSON:
		if c.Name == "" {
			return fmt.Errorf("output %q requires a field name", c.Output)
		}
	default:
		return fmt.Errorf("output must be %q, %q or %q, got %q", OutputValue, OutputForm, OutputJSON, c.Output)
	}
	return nil
}

// ValidateSettings checks everything except the output settings.
func (c *Config) ValidateSettings() error {
	if c.MaxRows < 1 {
		return fmt.Errorf("max_rows must be positive, got %d", c.MaxRows)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if _, err := c.LoggingConfig(); err != nil {
		return err
	}
	return nil
}

// Language returns the locale used for case folding. An empty locale is
// language.Und.
func (c *Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("parsing locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// LoggingConfig converts the log section for the logging package.
func (c *Config) LoggingConfig() (logging.Config, error) {
	lvl, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, err
	}
	lc := logging.Config{Level: lvl, Format: c.Log.Format, File: c.Log.File}
	if err := lc.Validate(); err != nil {
		return logging.Config{}, fmt.Errorf("log: %w", err)
	}
	return lc, nil
}
