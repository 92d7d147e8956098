// Package config loads, saves and defaults run configurations.
package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"dikesim/internal/diffusion"
	"dikesim/internal/grid"
	"dikesim/internal/intrusion"
	"dikesim/internal/phase"
	"dikesim/internal/sim"
)

const (
	DefaultNx        = 150
	DefaultNz        = 150
	DefaultSpacing   = 5.0
	DefaultKRock     = 3.0
	DefaultKMagma    = 1.2
	DefaultRho       = 2800.0
	DefaultCp        = 1000.0
	DefaultLatent    = 4e5
	DefaultMidpoint  = 1000.0
	DefaultPhaseSpan = 50.0
	DefaultGeotherm  = 0.03 // K per meter
	DefaultInterval  = 500.0
	DefaultMaxKyr    = 10.0
)

type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Material  MaterialConfig  `yaml:"material"`
	Phase     PhaseConfig     `yaml:"phase"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Intrusion IntrusionConfig `yaml:"intrusion"`
	Run       RunConfig       `yaml:"run"`
}

type GridConfig struct {
	Nx int     `yaml:"nx"`
	Nz int     `yaml:"nz"`
	Dx float64 `yaml:"dx"`
	Dz float64 `yaml:"dz"`
}

type MaterialConfig struct {
	KRock  float64 `yaml:"k_rock"`
	KMagma float64 `yaml:"k_magma"`
	Rho    float64 `yaml:"rho"`
	Cp     float64 `yaml:"cp"`
	Latent float64 `yaml:"latent_heat"`
}

type PhaseConfig struct {
	Midpoint float64 `yaml:"midpoint"`
	Width    float64 `yaml:"width"`
}

type BoundaryConfig struct {
	Top      float64 `yaml:"top"`
	Geotherm float64 `yaml:"geotherm"` // K per meter; derives the bottom row
}

type IntrusionConfig struct {
	IntervalYears  float64 `yaml:"interval_years"`
	Width          float64 `yaml:"width"`
	Thickness      float64 `yaml:"thickness"`
	Temp           float64 `yaml:"temp"`
	Shape          string  `yaml:"shape"`
	XMin           float64 `yaml:"x_min"`
	XMax           float64 `yaml:"x_max"`
	ZMin           float64 `yaml:"z_min"`
	ZMax           float64 `yaml:"z_max"`
	AngleDeg       float64 `yaml:"angle_deg"` // rotation drawn in [-angle_deg, +angle_deg]
	TracersPerDike int     `yaml:"tracers_per_dike"`
}

type RunConfig struct {
	MaxKyr  float64 `yaml:"max_kyr"`
	Dt      float64 `yaml:"dt"` // seconds; 0 derives from the stability bound
	Safety  float64 `yaml:"safety"`
	Seed    int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	width := float64(DefaultNx) * DefaultSpacing
	depth := float64(DefaultNz) * DefaultSpacing

	return &Config{
		Grid: GridConfig{Nx: DefaultNx, Nz: DefaultNz, Dx: DefaultSpacing, Dz: DefaultSpacing},
		Material: MaterialConfig{
			KRock:  DefaultKRock,
			KMagma: DefaultKMagma,
			Rho:    DefaultRho,
			Cp:     DefaultCp,
			Latent: DefaultLatent,
		},
		Phase:    PhaseConfig{Midpoint: DefaultMidpoint, Width: DefaultPhaseSpan},
		Boundary: BoundaryConfig{Top: 0, Geotherm: DefaultGeotherm},
		Intrusion: IntrusionConfig{
			IntervalYears:  DefaultInterval,
			Width:          200,
			Thickness:      10,
			Temp:           1200,
			Shape:          "rect",
			XMin:           0.2 * width,
			XMax:           0.8 * width,
			ZMin:           0.4 * depth,
			ZMax:           0.8 * depth,
			AngleDeg:       15,
			TracersPerDike: 100,
		},
		Run: RunConfig{
			MaxKyr: DefaultMaxKyr,
			Safety: diffusion.DefaultSafetyFactor,
			Seed:   1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// BuildOptions translates the config into driver options, converting
// calendar units to the solver's base seconds.
func (c *Config) BuildOptions() (sim.Options, error) {
	g, err := grid.New(c.Grid.Nx, c.Grid.Nz, c.Grid.Dx, c.Grid.Dz)
	if err != nil {
		return sim.Options{}, err
	}

	shape, err := intrusion.ParseShape(c.Intrusion.Shape)
	if err != nil {
		return sim.Options{}, err
	}

	angle := c.Intrusion.AngleDeg * math.Pi / 180

	return sim.Options{
		Grid: g,
		Material: diffusion.Material{
			KRock:  c.Material.KRock,
			KMagma: c.Material.KMagma,
			Rho:    c.Material.Rho,
			Cp:     c.Material.Cp,
			Latent: c.Material.Latent,
		},
		Boundary: diffusion.Boundary{
			Top:    c.Boundary.Top,
			Bottom: c.Boundary.Top + c.Boundary.Geotherm*g.Depth(),
		},
		Phase: phase.NewModel(c.Phase.Midpoint, c.Phase.Width),
		Intrusion: intrusion.Params{
			Interval:  c.Intrusion.IntervalYears * sim.SecondsPerYear,
			Width:     c.Intrusion.Width,
			Thickness: c.Intrusion.Thickness,
			Temp:      c.Intrusion.Temp,
			Shape:     shape,
			XMin:      c.Intrusion.XMin,
			XMax:      c.Intrusion.XMax,
			ZMin:      c.Intrusion.ZMin,
			ZMax:      c.Intrusion.ZMax,
			AngleMin:  -angle,
			AngleMax:  angle,
		},
		MaxTime:        c.Run.MaxKyr * 1000 * sim.SecondsPerYear,
		Dt:             c.Run.Dt,
		Safety:         c.Run.Safety,
		Seed:           c.Run.Seed,
		TracersPerDike: c.Intrusion.TracersPerDike,
	}, nil
}
