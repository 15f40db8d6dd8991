package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderStrikeXX/rhoPISO/fluid"
)

func TestDriverAdvanceRunsOneStepWithoutError(t *testing.T) {
	cfg := testConfig()
	cfg.MaxIter = 5
	d := NewDriver(cfg, fluid.SodiumProvider{})

	require.NoError(t, d.Advance())
	assert.Equal(t, 1, d.Step)
	assert.InDelta(t, cfg.Dt, d.Time, 1e-12)

	for i := 0; i < d.Fields.N; i++ {
		require.False(t, math.IsNaN(d.Fields.T.AtVec(i)))
		require.False(t, math.IsNaN(d.Fields.U.AtVec(i)))
		require.Greater(t, d.Fields.Rho.AtVec(i), 0.0)
	}
}

func TestDriverRunCompletesConfiguredSteps(t *testing.T) {
	cfg := testConfig()
	cfg.TMax = 3 * cfg.Dt
	cfg.MaxIter = 3
	d := NewDriver(cfg, fluid.SodiumProvider{})

	_, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, cfg.TimeSteps(), d.Step)
}

func TestDriverWithTurbulenceEnabledStaysFinite(t *testing.T) {
	cfg := testConfig()
	cfg.Turbulence = true
	cfg.MaxIter = 3
	d := NewDriver(cfg, fluid.SodiumProvider{})

	require.NoError(t, d.Advance())
	for i := 0; i < d.Fields.N; i++ {
		require.False(t, math.IsNaN(d.Turb.K[i]))
		require.False(t, math.IsNaN(d.Turb.Omega[i]))
		require.GreaterOrEqual(t, d.Turb.MuT[i], 0.0)
	}
}
