// Package config loads dropctl configuration: yaml profiles that can
// override the built-in weight tables and grade thresholds, plus
// DROPCTL_* environment overrides for operational settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dropsim/dropctl/pkg/scoring"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Threshold is one yaml grade threshold entry.
type Threshold struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// Profile overrides one module's weight table and grade thresholds. An
// empty section keeps the built-in defaults.
type Profile struct {
	Weights    map[string]float64 `yaml:"weights,omitempty"`
	Thresholds []Threshold        `yaml:"thresholds,omitempty"`
}

// Config is the top-level dropctl configuration.
type Config struct {
	DB      string `yaml:"db,omitempty" env:"DROPCTL_DB"`
	Debug   bool   `yaml:"debug,omitempty" env:"DROPCTL_DEBUG"`
	Webhook struct {
		URL string `yaml:"url,omitempty" env:"DROPCTL_WEBHOOK_URL"`
	} `yaml:"webhook,omitempty"`
	Simulation struct {
		Seed   int64 `yaml:"seed,omitempty" env:"DROPCTL_SEED"`
		Orders int   `yaml:"orders,omitempty" env:"DROPCTL_ORDERS"`
	} `yaml:"simulation,omitempty"`
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	c := &Config{Profiles: map[string]Profile{}}
	c.Simulation.Seed = 42
	c.Simulation.Orders = 25
	return c
}

// Load reads the config file and applies environment overrides. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "error reading config: %s", path)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "error parsing config: %s", path)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing environment overrides")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the directory, creating it if needed.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	if err := os.MkdirAll(dirPath, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create config dir: %s", dirPath)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// Scorer builds a scorer for the named module from its profile, falling
// back to the given defaults where the profile is silent. A profile that
// produces an invalid scorer is a configuration error.
func (c *Config) Scorer(module string, weights scoring.WeightTable, thresholds scoring.GradeThresholds) (*scoring.Scorer, error) {
	p, ok := c.Profiles[module]
	if !ok {
		return scoring.New(weights, thresholds)
	}

	if len(p.Weights) > 0 {
		merged := make(scoring.WeightTable, 0, len(weights))
		for _, w := range weights {
			if override, ok := p.Weights[w.Name]; ok {
				w.Weight = override
			}
			merged = append(merged, w)
		}
		weights = merged
	}

	if len(p.Thresholds) > 0 {
		overridden := make(scoring.GradeThresholds, 0, len(p.Thresholds))
		for _, t := range p.Thresholds {
			overridden = append(overridden, scoring.Grade{Min: t.Min, Label: t.Label})
		}
		thresholds = overridden
	}

	s, err := scoring.New(weights, thresholds)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid profile for module: %s", module)
	}
	return s, nil
}

func (c *Config) validate() error {
	for name, p := range c.Profiles {
		for factor, w := range p.Weights {
			if w < 0 {
				return errors.Errorf("profile %s: negative weight for factor %s", name, factor)
			}
		}
		for i := 1; i < len(p.Thresholds); i++ {
			if p.Thresholds[i].Min >= p.Thresholds[i-1].Min {
				return errors.Errorf("profile %s: thresholds must be strictly decreasing", name)
			}
		}
	}
	return nil
}

// FindConfigFile looks for the config file in the given directory and its
// parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".dropctl", configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
