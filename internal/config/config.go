// Package config handles configuration loading for the conversion tools.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/kmlgeom/internal/kml"
)

// Config represents the root configuration file structure.
type Config struct {
	// Precision is the number of decimals in written coordinates.
	Precision *int     `yaml:"precision,omitempty" json:"precision,omitempty"`
	Verbosity string   `yaml:"verbosity,omitempty" json:"verbosity,omitempty"`
	Namespace string   `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Defaults  Defaults `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Strict    bool     `yaml:"strict,omitempty" json:"strict,omitempty"`
	Minify    bool     `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Defaults are the rendering hints applied to every encoded geometry.
type Defaults struct {
	Extrude      *bool  `yaml:"extrude,omitempty" json:"extrude,omitempty"`
	Tessellate   *bool  `yaml:"tessellate,omitempty" json:"tessellate,omitempty"`
	AltitudeMode string `yaml:"altitude_mode,omitempty" json:"altitude_mode,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	precision := kml.DefaultPrecision
	return &Config{
		Precision: &precision,
		Verbosity: "normal",
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path yields Default. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Precision != nil {
		switch p := *c.Precision; {
		case p < 0:
			problems = append(problems, "precision must not be negative")
		case p > kml.MaxPrecision:
			problems = append(problems, fmt.Sprintf("precision %d exceeds %d", p, kml.MaxPrecision))
		}
	}
	if _, err := kml.ParseVerbosity(c.Verbosity); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.ContainsAny(c.Namespace, ": <>") {
		problems = append(problems, "namespace must be a bare prefix")
	}
	if c.Defaults.AltitudeMode != "" {
		if _, err := kml.ParseAltitudeMode(c.Defaults.AltitudeMode); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// PrecisionOrDefault returns the configured precision or kml.DefaultPrecision.
func (c *Config) PrecisionOrDefault() int {
	if c.Precision == nil {
		return kml.DefaultPrecision
	}
	return *c.Precision
}

// VerbosityLevel returns the parsed verbosity, Normal when invalid.
func (c *Config) VerbosityLevel() kml.Verbosity {
	v, err := kml.ParseVerbosity(c.Verbosity)
	if err != nil {
		return kml.Normal
	}
	return v
}

// Hints converts the defaults section into rendering hints.
func (c *Config) Hints() kml.Hints {
	h := kml.Hints{
		Extrude:    c.Defaults.Extrude,
		Tessellate: c.Defaults.Tessellate,
	}
	if mode, err := kml.ParseAltitudeMode(c.Defaults.AltitudeMode); err == nil {
		h.AltitudeMode = &mode
	}
	return h
}
