package turbulence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderStrikeXX/rhoPISO/config"
)

func testConfig() *config.RunConfig {
	cfg := config.Defaults()
	cfg.Cells = 10
	cfg.Turbulence = true
	return &cfg
}

func TestInletClosureReturnsPositiveKAndOmega(t *testing.T) {
	cfg := testConfig()
	k0, omega0 := InletClosure(cfg, 1.0)
	assert.Greater(t, k0, 0.0)
	assert.Greater(t, omega0, 0.0)
}

func TestNewStateInitializesUniformFreestream(t *testing.T) {
	cfg := testConfig()
	s := NewState(cfg, 1.0)
	for i := range s.K {
		assert.Equal(t, s.k0, s.K[i])
		assert.Equal(t, s.omega0, s.Omega[i])
	}
}

func TestStepKeepsViscosityRatioCapped(t *testing.T) {
	cfg := testConfig()
	s := NewState(cfg, 1.0)
	n := cfg.Cells
	u := make([]float64, n)
	rho := make([]float64, n)
	rhoOld := make([]float64, n)
	mu := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = 0.01 * float64(i)
		rho[i] = 0.02
		rhoOld[i] = 0.02
		mu[i] = 3e-5
	}

	require.NoError(t, s.Step(cfg, u, rho, rhoOld, mu))
	for i := 0; i < n; i++ {
		require.False(t, math.IsNaN(s.MuT[i]))
		assert.LessOrEqual(t, s.MuT[i], ViscosityRatioCap*mu[i]+1e-12)
		assert.GreaterOrEqual(t, s.MuT[i], 0.0)
	}
}

func TestStepHoldsBoundaryValuesFrozen(t *testing.T) {
	cfg := testConfig()
	s := NewState(cfg, 1.0)
	n := cfg.Cells
	u := make([]float64, n)
	rho := make([]float64, n)
	rhoOld := make([]float64, n)
	mu := make([]float64, n)
	for i := 0; i < n; i++ {
		rho[i], rhoOld[i], mu[i] = 0.02, 0.02, 3e-5
	}

	require.NoError(t, s.Step(cfg, u, rho, rhoOld, mu))
	assert.Equal(t, s.k0, s.K[0])
	assert.Equal(t, s.k0, s.K[n-1])
	assert.Equal(t, s.omega0, s.Omega[0])
	assert.Equal(t, s.omega0, s.Omega[n-1])
}
