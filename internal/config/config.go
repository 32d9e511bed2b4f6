package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/dshills/bindkit/internal/logging"
	"github.com/dshills/bindkit/internal/manifest"
	"github.com/dshills/bindkit/internal/script"
)

// DefaultFile is the configuration file looked up in the working
// directory.
const DefaultFile = "bindkit.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BINDKIT_"

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds every bindkit setting.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Manifest  ManifestConfig  `toml:"manifest"`
	Script    ScriptConfig    `toml:"script"`
	Collation CollationConfig `toml:"collation"`

	// Path is the file the settings were read from, or "" for defaults.
	Path string `toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// ManifestConfig configures manifest loading and watching.
type ManifestConfig struct {
	Strict   bool     `toml:"strict"`
	Debounce Duration `toml:"debounce"`
}

// ScriptConfig configures Lua scripts.
type ScriptConfig struct {
	Timeout Duration `toml:"timeout"`
}

// CollationConfig configures locale-aware sorting.
type CollationConfig struct {
	Language string `toml:"language"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:       LogConfig{Level: "info"},
		Manifest:  ManifestConfig{Debounce: Duration(manifest.DefaultDebounce)},
		Script:    ScriptConfig{Timeout: Duration(script.DefaultTimeout)},
		Collation: CollationConfig{Language: language.English.String()},
	}
}

// Load resolves settings from defaults, the file at path and the
// environment. A missing file is not an error when path is DefaultFile.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := c.decode(path, data); err != nil {
				return nil, err
			}
			c.Path = path
		case errors.Is(err, os.ErrNotExist) && path == DefaultFile:
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// decode overlays the TOML document onto c. Unknown keys are rejected.
func (c *Config) decode(path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(c)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		perr.Line, perr.Column = serr.Errors[0].Position()
		perr.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return perr
}

// envSetting maps one environment variable onto a setting.
type envSetting struct {
	setting string
	apply   func(c *Config, value string) error
}

var envSettings = []envSetting{
	{"log.level", func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	}},
	{"manifest.strict", func(c *Config, v string) error {
		b, err := parseBool(v)
		c.Manifest.Strict = b
		return err
	}},
	{"manifest.debounce", func(c *Config, v string) error {
		return c.Manifest.Debounce.UnmarshalText([]byte(v))
	}},
	{"script.timeout", func(c *Config, v string) error {
		return c.Script.Timeout.UnmarshalText([]byte(v))
	}},
	{"collation.language", func(c *Config, v string) error {
		c.Collation.Language = v
		return nil
	}},
}

// EnvName returns the environment variable overriding a setting, such as
// BINDKIT_SCRIPT_TIMEOUT for "script.timeout".
func EnvName(setting string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(setting, ".", "_"))
}

// ApplyEnv overlays environment overrides read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, s := range envSettings {
		name := EnvName(s.setting)
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, strings.TrimSpace(v)); err != nil {
			errs = append(errs, &SettingError{Setting: s.setting, Source: name, Value: v, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	source := c.Path
	if source == "" {
		source = "defaults"
	}

	var errs []error
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, &SettingError{Setting: "log.level", Source: source, Value: c.Log.Level, Err: err})
	}
	if c.Manifest.Debounce < 0 {
		errs = append(errs, &SettingError{Setting: "manifest.debounce", Source: source, Value: c.Manifest.Debounce, Err: errors.New("negative duration")})
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, &SettingError{Setting: "script.timeout", Source: source, Value: c.Script.Timeout, Err: errors.New("negative duration")})
	}
	if _, err := language.Parse(c.Collation.Language); err != nil {
		errs = append(errs, &SettingError{Setting: "collation.language", Source: source, Value: c.Collation.Language, Err: err})
	}
	return errors.Join(errs...)
}

// Logger creates a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Log.Level)
	cfg.Output = w
	return logging.New(cfg)
}

// Language returns the collation language.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Collation.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// ManifestOptions returns the manifest parsing options.
func (c *Config) ManifestOptions() []manifest.Option {
	return []manifest.Option{manifest.WithStrict(c.Manifest.Strict)}
}

// WatchOptions returns the manifest watcher options.
func (c *Config) WatchOptions(logger *logging.Logger) []manifest.WatchOption {
	return []manifest.WatchOption{
		manifest.WithDebounce(time.Duration(c.Manifest.Debounce)),
		manifest.WithLoadOptions(c.ManifestOptions()...),
		manifest.WithWatchLogger(logger),
	}
}

// ScriptOptions returns the Lua state options.
func (c *Config) ScriptOptions(logger *logging.Logger) []script.Option {
	return []script.Option{
		script.WithTimeout(time.Duration(c.Script.Timeout)),
		script.WithLogger(logger),
	}
}

// Encode writes the settings as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func parseLevel(s string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return logging.ParseLevel(s), nil
	}
	return logging.LevelInfo, fmt.Errorf("unknown level %q", s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
