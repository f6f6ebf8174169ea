package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/dartsim/internal/board"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNSims          = 200000
	DefaultMinDispersion  = 2.5
	DefaultMaxDispersion  = 50.0
	DefaultDispersionStep = 2.5
	DefaultResultsFile    = "results.csv"
)

// Config describes a sweep over aim points and dispersions.
type Config struct {
	NSims          int      `yaml:"n_sims"`
	MinDispersion  float64  `yaml:"min_dispersion"`
	MaxDispersion  float64  `yaml:"max_dispersion"`
	DispersionStep float64  `yaml:"dispersion_step"`
	ResultsFile    string   `yaml:"results_file"`
	Seed           int64    `yaml:"seed"`
	Workers        int      `yaml:"workers"`
	AimPoints      []string `yaml:"aim_points"`
}

func DefaultConfig() *Config {
	return &Config{
		NSims:          DefaultNSims,
		MinDispersion:  DefaultMinDispersion,
		MaxDispersion:  DefaultMaxDispersion,
		DispersionStep: DefaultDispersionStep,
		ResultsFile:    DefaultResultsFile,
		AimPoints:      board.AimNames(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if c.NSims <= 0 {
		errs = append(errs, fmt.Errorf("n_sims must be positive, got %d", c.NSims))
	}
	if c.MinDispersion < 0 {
		errs = append(errs, fmt.Errorf("min_dispersion must not be negative, got %g", c.MinDispersion))
	}
	if c.MaxDispersion < c.MinDispersion {
		errs = append(errs, fmt.Errorf("max_dispersion %g is below min_dispersion %g", c.MaxDispersion, c.MinDispersion))
	}
	if c.DispersionStep <= 0 {
		errs = append(errs, fmt.Errorf("dispersion_step must be positive, got %g", c.DispersionStep))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if len(c.AimPoints) == 0 {
		errs = append(errs, errors.New("at least one aim point is required"))
	}
	if _, err := board.LookupAims(c.AimPoints); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dispersions lists min, min+step, ... up to max inclusive. Values are
// computed from the index so the last one does not drift.
func (c *Config) Dispersions() []float64 {
	if c.DispersionStep <= 0 || c.MaxDispersion < c.MinDispersion {
		return nil
	}
	var out []float64
	for i := 0; ; i++ {
		d := c.MinDispersion + float64(i)*c.DispersionStep
		if d > c.MaxDispersion+1e-9 {
			break
		}
		out = append(out, d)
	}
	return out
}

func (c *Config) Aims() ([]board.AimPoint, error) {
	return board.LookupAims(c.AimPoints)
}
