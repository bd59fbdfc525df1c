package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/alexshd/metallab"
)

type DeoxidationConfig struct {
	Temperature   float64 `toml:"temperature"`
	AlMin         float64 `toml:"al_min"`
	AlMax         float64 `toml:"al_max"`
	Points        int     `toml:"points"`
	ActivityAl2O3 float64 `toml:"activity_al2o3"`
	InitialGuess  float64 `toml:"initial_guess"`
	Bound         float64 `toml:"bound"`
	Orders        []int   `toml:"orders"`
	Experimental  string  `toml:"experimental"`
}

type SolverConfig struct {
	XTol          float64 `toml:"xtol"`
	MaxIterations int     `toml:"max_iterations"`
}

type GumbelConfig struct {
	Samples      string  `toml:"samples"`
	Estimator    string  `toml:"estimator"`
	ReturnPeriod float64 `toml:"return_period"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
	Plots  bool   `toml:"plots"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Deoxidation DeoxidationConfig `toml:"deoxidation"`
	Solver      SolverConfig      `toml:"solver"`
	Gumbel      GumbelConfig      `toml:"gumbel"`
	Output      OutputConfig      `toml:"output"`
	Log         LogConfig         `toml:"log"`
}

// Default reproduces the notebook setup: 1873 K, pure alumina, 100 points
// from 1e-4 to 10 %Al, curves cut at 0.01 %O.
func Default() *Config {
	solver := metallab.DefaultSolverConfig()
	return &Config{
		Deoxidation: DeoxidationConfig{
			Temperature:   1873,
			AlMin:         1e-4,
			AlMax:         10,
			Points:        100,
			ActivityAl2O3: 1,
			InitialGuess:  metallab.DefaultInitialGuess,
			Bound:         1e-2,
			Orders:        []int{0, 1, 2},
		},
		Solver: SolverConfig{
			XTol:          solver.XTol,
			MaxIterations: solver.MaxIterations,
		},
		Gumbel: GumbelConfig{
			Estimator: metallab.MethodMaxLikelihood,
		},
		Output: OutputConfig{
			Format: "yaml",
			Dir:    ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the numeric core would reject later, so a bad file
// fails before any work starts.
func (c *Config) Validate() error {
	d := c.Deoxidation
	q := metallab.EquilibriumQuery{PctAl: d.AlMin, Temperature: d.Temperature, ActivityAl2O3: d.ActivityAl2O3}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("deoxidation: %w", err)
	}
	if d.AlMax <= d.AlMin {
		return fmt.Errorf("deoxidation: al_max (%g) must exceed al_min (%g)", d.AlMax, d.AlMin)
	}
	if d.Points < 2 {
		return fmt.Errorf("deoxidation: points must be >= 2, got %d", d.Points)
	}
	if d.Bound <= 0 {
		return fmt.Errorf("deoxidation: bound must be > 0, got %g", d.Bound)
	}
	if d.InitialGuess <= 0 {
		return fmt.Errorf("deoxidation: initial_guess must be > 0, got %g", d.InitialGuess)
	}
	if len(d.Orders) == 0 {
		return fmt.Errorf("deoxidation: at least one order is required")
	}
	for _, o := range d.Orders {
		if err := metallab.Order(o).Validate(); err != nil {
			return fmt.Errorf("deoxidation: %w", err)
		}
	}

	if _, err := metallab.EstimatorByName(c.Gumbel.Estimator); err != nil {
		return fmt.Errorf("gumbel: %w", err)
	}
	if c.Gumbel.ReturnPeriod != 0 && c.Gumbel.ReturnPeriod <= 1 {
		return fmt.Errorf("gumbel: return_period must be > 1, got %g", c.Gumbel.ReturnPeriod)
	}

	switch strings.ToLower(c.Output.Format) {
	case "yaml", "json":
	default:
		return fmt.Errorf("output: unknown format %q (use yaml or json)", c.Output.Format)
	}

	return nil
}

// SweepParams converts the deoxidation section for one order.
func (c *Config) SweepParams(order metallab.Order) metallab.SweepParams {
	return metallab.SweepParams{
		Temperature:   c.Deoxidation.Temperature,
		ActivityAl2O3: c.Deoxidation.ActivityAl2O3,
		Order:         order,
		InitialGuess:  c.Deoxidation.InitialGuess,
		Bound:         c.Deoxidation.Bound,
		Solver: metallab.SolverConfig{
			XTol:          c.Solver.XTol,
			MaxIterations: c.Solver.MaxIterations,
		},
	}
}

// Grid returns the logarithmic [%Al] grid.
func (c *Config) Grid() ([]float64, error) {
	return metallab.LogSpace(c.Deoxidation.AlMin, c.Deoxidation.AlMax, c.Deoxidation.Points)
}
