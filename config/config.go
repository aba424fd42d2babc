// Package config loads the settings of the connection tools from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the tunables of gluing and dragging.
type Config struct {
	// GlueDistance is the radius within which a handle snaps to a port.
	GlueDistance float64 `yaml:"glue_distance"`
	// HandleTolerance is how far from a handle a press still grabs it.
	HandleTolerance float64 `yaml:"handle_tolerance"`
	LogLevel        string  `yaml:"log_level"`
	MinElementSize  float64 `yaml:"min_element_size"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		GlueDistance:    10,
		HandleTolerance: 4,
		LogLevel:        "info",
		MinElementSize:  10,
	}
}

// Load reads a YAML file. Settings missing from the file keep their
// defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data and fills defaults for zero values.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	def := Default()
	if cfg.GlueDistance == 0 {
		cfg.GlueDistance = def.GlueDistance
	}
	if cfg.HandleTolerance == 0 {
		cfg.HandleTolerance = def.HandleTolerance
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.MinElementSize == 0 {
		cfg.MinElementSize = def.MinElementSize
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings for values the tools cannot work with.
func (c Config) Validate() error {
	if c.GlueDistance < 0 {
		return fmt.Errorf("%w: glue_distance %v is negative", ErrInvalid, c.GlueDistance)
	}
	if c.HandleTolerance < 0 {
		return fmt.Errorf("%w: handle_tolerance %v is negative", ErrInvalid, c.HandleTolerance)
	}
	if c.MinElementSize < 0 {
		return fmt.Errorf("%w: min_element_size %v is negative", ErrInvalid, c.MinElementSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// NewLogger builds a logger writing to out at the configured level.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = out
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}
