package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

func TestAssembleEnergyZeroGradientBoundaries(t *testing.T) {
	cfg := testConfig()
	f := NewFields(cfg)
	pm := numerics.NewPartitionMap(0, f.N, 1, 1)
	mom := &MomentumSystem{InvAP: make([]float64, f.N)}
	for i := range mom.InvAP {
		mom.InvAP[i] = cfg.Dz()
	}
	sys := AssembleEnergy(cfg, f, mom, nil, fluid.SodiumProvider{}, pm)

	assert.Equal(t, 0.0, sys.A[0], "west boundary row has no sub-diagonal term")
	assert.Equal(t, 1.0, sys.B[0], "west boundary row is a zero-gradient Dirichlet-style row")
	assert.Equal(t, -1.0, sys.C[0], "west boundary row ties T[0] to T[1]")
	assert.Equal(t, 0.0, sys.D[0])

	assert.Equal(t, -1.0, sys.A[f.N-1], "east boundary row ties T[N-1] to T[N-2]")
	assert.Equal(t, 1.0, sys.B[f.N-1], "east boundary row is a zero-gradient Dirichlet-style row")
	assert.Equal(t, 0.0, sys.C[f.N-1], "east boundary row has no super-diagonal term")
	assert.Equal(t, 0.0, sys.D[f.N-1])

	for i := range sys.B {
		require.Greater(t, sys.B[i], 0.0)
	}
}

func TestSolveEnergyKeepsTemperaturePositive(t *testing.T) {
	cfg := testConfig()
	f := NewFields(cfg)
	pm := numerics.NewPartitionMap(0, f.N, 1, 1)
	mom := &MomentumSystem{InvAP: make([]float64, f.N)}
	for i := range mom.InvAP {
		mom.InvAP[i] = cfg.Dz()
	}
	sys := AssembleEnergy(cfg, f, mom, nil, fluid.SodiumProvider{}, pm)
	s := numerics.NewSolver(f.N)
	require.NoError(t, SolveEnergy(s, f, sys))
	for i := 0; i < f.N; i++ {
		require.False(t, math.IsNaN(f.T.AtVec(i)))
		require.Greater(t, f.T.AtVec(i), 0.0)
	}
}
