package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

// quiescentConfig returns a configuration with no forcing of any kind:
// zero initial velocity, zero inlet/outlet velocity, zero mass/energy
// source-sink magnitudes, and an outlet pressure matching the uniform
// initial pressure. A PISO step run against this configuration should
// leave every field exactly at its initial value.
func quiescentConfig() *config.RunConfig {
	cfg := config.Defaults()
	cfg.Cells = 10
	cfg.InitU = 0.0
	cfg.UInlet = 0.0
	cfg.UOutlet = 0.0
	cfg.MassSourceMagnitude = 0.0
	cfg.MassSinkMagnitude = 0.0
	cfg.EnergySourceMagnitude = 0.0
	cfg.EnergySinkMagnitude = 0.0
	cfg.POutlet = cfg.InitP
	return &cfg
}

func TestRunPISOConvergesOnQuiescentField(t *testing.T) {
	// Scenario S1: uniform initial state, no momentum or energy forcing
	// of any kind. The outer loop must terminate and leave every field
	// at its initial value: u==0 everywhere, p within 1 Pa of the
	// initial/outlet pressure, T unchanged at the initial temperature.
	cfg := quiescentConfig()
	cfg.MaxIter = 5
	f := NewFields(cfg)
	s := numerics.NewSolver(f.N)
	pm := numerics.NewPartitionMap(0, f.N, 1, 1)

	iterations, _, err := RunPISO(cfg, f, s, fluid.SodiumProvider{}, pm)
	require.NoError(t, err)
	assert.LessOrEqual(t, iterations, cfg.MaxIter)

	for i := 0; i < f.N; i++ {
		require.False(t, math.IsNaN(f.P.AtVec(i)))
		require.False(t, math.IsNaN(f.U.AtVec(i)))
		require.Greater(t, f.Rho.AtVec(i), 0.0)
		assert.InDelta(t, 0.0, f.U.AtVec(i), 1e-10, "cell %d velocity should stay quiescent", i)
		assert.InDelta(t, cfg.InitP, f.P.AtVec(i), 1.0, "cell %d pressure should stay near its initial value", i)
		assert.InDelta(t, cfg.InitT, f.T.AtVec(i), 1e-6, "cell %d temperature should stay fixed with no energy forcing", i)
	}
}

func TestResidualNormIsZeroForZeroImbalance(t *testing.T) {
	residual := make([]float64, 5)
	assert.Equal(t, 0.0, ResidualNorm(residual))
}

func TestResidualNormIsPositiveForNonzeroImbalance(t *testing.T) {
	residual := []float64{1, -1, 2, -2}
	assert.Greater(t, ResidualNorm(residual), 0.0)
}

func TestRhieChowDisabledStillProducesFiniteFields(t *testing.T) {
	cfg := testConfig()
	cfg.RhieChow = false
	cfg.MaxIter = 5
	f := NewFields(cfg)
	s := numerics.NewSolver(f.N)
	pm := numerics.NewPartitionMap(0, f.N, 1, 1)

	_, _, err := RunPISO(cfg, f, s, fluid.SodiumProvider{}, pm)
	require.NoError(t, err)
	for i := 0; i < f.N; i++ {
		require.False(t, math.IsNaN(f.U.AtVec(i)))
	}
}

// checkerboardAmplitude projects p onto the alternating +1/-1 mode. For
// an even-length p this exactly isolates a pure checkerboard
// perturbation from any uniform or smoothly varying component.
func checkerboardAmplitude(p []float64) float64 {
	sum := 0.0
	sign := 1.0
	for _, v := range p {
		sum += v * sign
		sign = -sign
	}
	return sum / float64(len(p))
}

func TestRhieChowSuppressesCheckerboardOscillation(t *testing.T) {
	// Scenario S3: seed the pressure field with a pure checkerboard
	// perturbation and run a few PISO outer iterations from the same
	// initial state with Rhie-Chow enabled and disabled. The compact
	// -minus-linear correction in FaceVelocity is the only path through
	// which this mode reaches the pressure-correction residual: central
	// differencing of a checkerboard signal is exactly zero two cells
	// apart, so a bare linear face average never senses it and the
	// corrector has nothing to act on.
	const amplitude = 100.0

	seed := func(cfg *config.RunConfig) *Fields {
		f := NewFields(cfg)
		p := Data(f.P)
		sign := 1.0
		for i := range p {
			p[i] += amplitude * sign
			sign = -sign
		}
		f.RefreshPaddedPressure(cfg.POutlet)
		return f
	}

	run := func(rhieChow bool) float64 {
		cfg := quiescentConfig()
		cfg.RhieChow = rhieChow
		cfg.MaxIter = 3
		f := seed(cfg)
		s := numerics.NewSolver(f.N)
		pm := numerics.NewPartitionMap(0, f.N, 1, 1)
		_, _, err := RunPISO(cfg, f, s, fluid.SodiumProvider{}, pm)
		require.NoError(t, err)
		return math.Abs(checkerboardAmplitude(Data(f.P)))
	}

	withRC := run(true)
	withoutRC := run(false)

	require.Greater(t, withoutRC, amplitude/2.0, "expected the seeded checkerboard mode to survive without Rhie-Chow")
	assert.Less(t, withRC, withoutRC/10.0, "Rhie-Chow should suppress the checkerboard mode by at least 10x")
}
