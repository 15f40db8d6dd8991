// Package config defines the run configuration consumed by the PISO
// driver, mirroring the teacher's InputParameters package: a flat,
// YAML-tagged struct with a Defaults constructor and a Parse method
// that unmarshals a configuration file on top of those defaults.
package config

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// RunConfig carries every constant the specification's §6 external
// interface names, plus the ambient knobs (output path, log level,
// worker limits) that a runnable CLI tool needs but the core numerics
// do not.
type RunConfig struct {
	Title string `json:"title"`

	// Geometry and grid.
	Length float64 `json:"length"` // L [m]
	Cells  int     `json:"cells"`  // N

	// Time stepping.
	Dt   float64 `json:"dt"`   // [s]
	TMax float64 `json:"tMax"` // [s]

	// PISO control.
	MaxIter       int     `json:"maxIter"`       // tot_iter
	CorrectorIter int     `json:"correctorIter"` // corr_iter
	Tolerance     float64 `json:"tolerance"`     // tol

	// Equation of state.
	Rv float64 `json:"rv"` // specific gas constant [J/(kg*K)]

	// Initial field values.
	InitU float64 `json:"initU"`
	InitP float64 `json:"initP"`
	InitT float64 `json:"initT"`

	// Boundary conditions.
	UInlet  float64 `json:"uInlet"`
	UOutlet float64 `json:"uOutlet"`
	POutlet float64 `json:"pOutlet"`

	// Source/sink zoning (spec §3): first MassSourceFrac of interior
	// cells receive MassSourceMagnitude, last MassSinkFrac receive
	// MassSinkMagnitude; the energy source is zoned by the same rule
	// with its own fractions and magnitudes below.
	MassSourceFrac      float64 `json:"massSourceFrac"`
	MassSinkFrac        float64 `json:"massSinkFrac"`
	MassSourceMagnitude float64 `json:"massSourceMagnitude"`
	MassSinkMagnitude   float64 `json:"massSinkMagnitude"`

	EnergySourceFrac      float64 `json:"energySourceFrac"`
	EnergySinkFrac        float64 `json:"energySinkFrac"`
	EnergySourceMagnitude float64 `json:"energySourceMagnitude"`
	EnergySinkMagnitude   float64 `json:"energySinkMagnitude"`

	// Numerical toggles.
	RhieChow   bool `json:"rhieChow"`
	Turbulence bool `json:"turbulence"`

	// Turbulence closure.
	TurbulenceIntensity float64 `json:"turbulenceIntensity"` // I
	PrandtlT            float64 `json:"prandtlT"`            // Pr_t

	// Diagnostics (not part of the core numerics; used only to report
	// the Reynolds number each step).
	PipeDiameter float64 `json:"pipeDiameter"` // D_pipe [m]

	// Ambient.
	OutputPath string `json:"outputPath"`
	LogLevel   string `json:"logLevel"`
	MaxWorkers int     `json:"maxWorkers"`
}

// Defaults returns the configuration that reproduces the reference
// program's scenario exactly: N=100, L=1m, dt=1ms, t_max=1s, sodium
// vapor at 1000 K / 50 kPa, no turbulence, Rhie-Chow enabled.
func Defaults() RunConfig {
	return RunConfig{
		Title:  "rhoPISO default run",
		Length: 1.0,
		Cells:  100,

		Dt:   1e-3,
		TMax: 1.0,

		MaxIter:       200,
		CorrectorIter: 2,
		Tolerance:     1e-8,

		Rv: 361.8,

		InitU: 0.01,
		InitP: 50000.0,
		InitT: 1000.0,

		UInlet:  0.0,
		UOutlet: 0.0,
		POutlet: 50000.0,

		MassSourceFrac:      0.2,
		MassSinkFrac:        0.2,
		MassSourceMagnitude: 0.1,
		MassSinkMagnitude:   -0.1,

		EnergySourceFrac:      0.2,
		EnergySinkFrac:        0.2,
		EnergySourceMagnitude: 500000.0,
		EnergySinkMagnitude:   -500000.0,

		RhieChow:   true,
		Turbulence: false,

		TurbulenceIntensity: 0.05,
		PrandtlT:             0.01,

		PipeDiameter: 0.1,

		OutputPath: "solution_rhoPISO.txt",
		LogLevel:   "info",
		MaxWorkers: 0, // 0 means "use runtime.NumCPU()"
	}
}

// Parse unmarshals YAML data on top of the receiver's current values,
// the same override-in-place behavior as
// InputParameters.InputParameters2D.Parse.
func (c *RunConfig) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Validate reports the first structural problem found in c, if any.
// It does not validate physical plausibility (e.g. negative pressure)
// beyond what would make the grid or time stepping meaningless.
func (c *RunConfig) Validate() error {
	switch {
	case c.Cells < 3:
		return fmt.Errorf("config: cells must be >= 3, got %d", c.Cells)
	case c.Length <= 0:
		return fmt.Errorf("config: length must be positive, got %g", c.Length)
	case c.Dt <= 0:
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	case c.TMax <= 0:
		return fmt.Errorf("config: tMax must be positive, got %g", c.TMax)
	case c.Rv <= 0:
		return fmt.Errorf("config: rv must be positive, got %g", c.Rv)
	case c.MassSourceFrac < 0 || c.MassSourceFrac > 1:
		return fmt.Errorf("config: massSourceFrac must be in [0,1], got %g", c.MassSourceFrac)
	case c.MassSinkFrac < 0 || c.MassSinkFrac > 1:
		return fmt.Errorf("config: massSinkFrac must be in [0,1], got %g", c.MassSinkFrac)
	case c.MassSourceFrac+c.MassSinkFrac > 1:
		return fmt.Errorf("config: massSourceFrac+massSinkFrac must be <= 1, got %g", c.MassSourceFrac+c.MassSinkFrac)
	case c.MaxIter <= 0:
		return fmt.Errorf("config: maxIter must be positive, got %d", c.MaxIter)
	case c.CorrectorIter <= 0:
		return fmt.Errorf("config: correctorIter must be positive, got %d", c.CorrectorIter)
	}
	return nil
}

// Dz returns the grid spacing L/N.
func (c *RunConfig) Dz() float64 { return c.Length / float64(c.Cells) }

// TimeSteps returns the number of steps to integrate, round(t_max/dt).
func (c *RunConfig) TimeSteps() int {
	steps := c.TMax/c.Dt + 0.5
	return int(steps)
}

// Print writes a human-readable summary, mirroring
// InputParameters2D.Print.
func (c *RunConfig) Print() {
	fmt.Printf("%q\t\t= Title\n", c.Title)
	fmt.Printf("%8.5f\t\t= Length [m]\n", c.Length)
	fmt.Printf("%8d\t\t\t= Cells\n", c.Cells)
	fmt.Printf("%8.5e\t= dt [s]\n", c.Dt)
	fmt.Printf("%8.5f\t\t= TMax [s]\n", c.TMax)
	fmt.Printf("%8.5e\t= Tolerance\n", c.Tolerance)
	fmt.Printf("%8v\t\t\t= Rhie-Chow\n", c.RhieChow)
	fmt.Printf("%8v\t\t\t= Turbulence\n", c.Turbulence)
}
