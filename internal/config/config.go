// Package config loads runtime configuration.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/iterproto/internal/textenc"
)

// Config is the runtime configuration, typically read from a YAML file.
type Config struct {
	// LogLevel is the minimum level of VM diagnostics.
	LogLevel string `yaml:"log_level"`
	// Encoding is the default encoding for decoding strs from bytes.
	Encoding string `yaml:"encoding"`
	// LengthHint controls length estimation for host sequences.
	LengthHint LengthHintConfig `yaml:"length_hint"`
}

// LengthHintConfig controls how host sequences estimate their lengths.
type LengthHintConfig struct {
	// Disabled skips the length probe entirely.
	Disabled bool `yaml:"disabled"`
	// Strict makes a failing probe an error instead of "no hint".
	Strict bool `yaml:"strict"`
	// MaxPrealloc caps the capacity preallocated from a hint.
	MaxPrealloc int `yaml:"max_prealloc"`
}

// DefaultMaxPrealloc is the default cap on preallocation from length hints.
const DefaultMaxPrealloc = 1 << 16

// Default returns the default configuration.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

// Load reads the configuration from the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration, applies defaults, and validates the
// result.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if c.Encoding == "" {
		c.Encoding = textenc.Default
	}
	if c.LengthHint.MaxPrealloc == 0 {
		c.LengthHint.MaxPrealloc = DefaultMaxPrealloc
	}
}

// Validate checks that the configuration's values are usable.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if !textenc.Known(c.Encoding) {
		return fmt.Errorf("unknown encoding %q (want one of %v)", c.Encoding, textenc.Names())
	}
	if c.LengthHint.MaxPrealloc < 0 {
		return fmt.Errorf("length_hint.max_prealloc must not be negative")
	}
	return nil
}

// Level returns the configured log level, or info if it is invalid.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
