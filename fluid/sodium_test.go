package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiquidCorrelationsMonotoneRegion(t *testing.T) {
	// Liquid density should decrease with increasing temperature near
	// the operating range used by the representative configuration.
	rhoLow := LiquidDensity(500)
	rhoHigh := LiquidDensity(1000)
	assert.Greater(t, rhoLow, rhoHigh)
}

func TestVaporSpecificHeatTableEndpoints(t *testing.T) {
	assert.InDelta(t, 860, VaporSpecificHeat(100), 1e-9, "below grid clamps to first entry")
	assert.InDelta(t, 2700, VaporSpecificHeat(1000), 1e-9, "exact grid point")
	assert.Equal(t, vaporCpNearCritical, VaporSpecificHeat(2600))
}

func TestVaporSpecificHeatInterpolatesBetweenGridPoints(t *testing.T) {
	mid := VaporSpecificHeat(950)
	assert.Greater(t, mid, 2700.0)
	assert.Less(t, mid, 2720.0)
}

func TestVaporConductivityInsideGrid(t *testing.T) {
	k := VaporConductivity(1000, 9807)
	assert.InDelta(t, 0.049627, k, 1e-6)
}

func TestVaporConductivityExtrapolatesAboveGrid(t *testing.T) {
	kAtMax := VaporConductivity(1500, 981)
	kAbove := VaporConductivity(1600, 981)
	assert.Greater(t, kAbove, kAtMax, "sqrt(T) extrapolation should increase conductivity with T")
}

func TestFrictionFactorRejectsNonPositiveReynolds(t *testing.T) {
	_, err := FrictionFactor(0)
	require.Error(t, err)
	var argErr *ErrInvalidPropertyArgument
	require.ErrorAs(t, err, &argErr)
}

func TestNusseltNumberLaminarConstant(t *testing.T) {
	Nu, err := NusseltNumber(500, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 4.36, Nu)
}

func TestNusseltNumberTurbulentPositive(t *testing.T) {
	Nu, err := NusseltNumber(1e5, 0.01)
	require.NoError(t, err)
	assert.Greater(t, Nu, 0.0)
}

func TestSaturationPressureIncreasesWithTemperature(t *testing.T) {
	p1 := SaturationPressure(800)
	p2 := SaturationPressure(1000)
	assert.Greater(t, p2, p1)
}

func TestSodiumProviderImplementsInterface(t *testing.T) {
	var p Provider = SodiumProvider{}
	assert.Greater(t, p.Viscosity(1000), 0.0)
	assert.Greater(t, p.SpecificHeat(1000), 0.0)
	assert.Greater(t, p.Conductivity(1000, 9807), 0.0)
}
