package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config paths whose extension names no codec.
var ErrUnknownFormat = errors.New("config: unknown file format")

// ErrInvalidValue is returned by Validate when a named setting had to be replaced.
var ErrInvalidValue = errors.New("config: invalid value")

// Config holds runtime configuration for the viewer.
// Fields may be loaded from a JSON, YAML or TOML file and overridden by command-line flags.
type Config struct {
	Debug       bool   `json:"debug" yaml:"debug" toml:"debug"`
	LogLevel    string `json:"log_level" yaml:"log_level" toml:"log_level"`
	Interactive bool   `json:"interactive" yaml:"interactive" toml:"interactive"`

	// UI loop
	PollIntervalMS int `json:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms"`

	// Surface
	ZoomStep float64 `json:"zoom_step" yaml:"zoom_step" toml:"zoom_step"`
	MinZoom  float64 `json:"min_zoom" yaml:"min_zoom" toml:"min_zoom"`
	MaxZoom  float64 `json:"max_zoom" yaml:"max_zoom" toml:"max_zoom"`
	Theme    string  `json:"theme" yaml:"theme" toml:"theme"`

	// Face detection cascade used by the faces command.
	Cascade string `json:"cascade" yaml:"cascade" toml:"cascade"`

	DownloadTimeoutS int `json:"download_timeout_s" yaml:"download_timeout_s" toml:"download_timeout_s"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		LogLevel:         "info",
		Interactive:      false,
		PollIntervalMS:   50,
		ZoomStep:         1.25,
		MinZoom:          0.05,
		MaxZoom:          64,
		Theme:            "light",
		Cascade:          "",
		DownloadTimeoutS: 60,
	}
}

// Validate clamps/normalizes values to safe ranges. Numeric fields are
// clamped silently; an unknown log level or theme is replaced by its default
// and reported as ErrInvalidValue. The config is usable either way.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalidValue, c.LogLevel))
		c.LogLevel = "info"
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = 50
	}
	if c.PollIntervalMS > 1000 {
		c.PollIntervalMS = 1000
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = 1.25
	}
	if c.MinZoom <= 0 {
		c.MinZoom = 0.05
	}
	if c.MaxZoom <= 0 || c.MaxZoom < c.MinZoom {
		c.MaxZoom = 64
		if c.MaxZoom < c.MinZoom {
			c.MaxZoom = c.MinZoom
		}
	}
	if c.Theme != "light" && c.Theme != "dark" {
		errs = append(errs, fmt.Errorf("%w: theme %q", ErrInvalidValue, c.Theme))
		c.Theme = "light"
	}
	if c.DownloadTimeoutS < 0 {
		c.DownloadTimeoutS = 0
	}
	return errors.Join(errs...)
}

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load attempts to read configuration from the given file path, choosing the
// codec by extension. If the file does not exist it returns DefaultConfig().
// On decode error it returns defaults with the error. Values Validate had to
// replace are reported alongside the normalized config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := formatFor(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	case formatTOML:
		err = toml.Unmarshal(data, cfg)
	default:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path in the format its extension names.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := formatFor(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(c)
	case formatTOML:
		data, err = toml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
