package numerics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDiagDominant builds a random diagonally-dominant tridiagonal
// system of size n from a seeded source, so the test is deterministic.
func randomDiagDominant(r *rand.Rand, n int) (a, b, c, d []float64) {
	a = make([]float64, n)
	b = make([]float64, n)
	c = make([]float64, n)
	d = make([]float64, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			a[i] = r.Float64()*2 - 1
		}
		if i < n-1 {
			c[i] = r.Float64()*2 - 1
		}
		b[i] = math.Abs(a[i]) + math.Abs(c[i]) + 1 + r.Float64()
		d[i] = r.Float64()*10 - 5
	}
	return
}

func reconstruct(a, b, c, x []float64) []float64 {
	n := len(b)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = b[i] * x[i]
		if i > 0 {
			d[i] += a[i] * x[i-1]
		}
		if i < n-1 {
			d[i] += c[i] * x[i+1]
		}
	}
	return d
}

func TestThomasRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 1000; trial++ {
		a, b, c, d := randomDiagDominant(r, 100)
		x, err := Thomas(a, b, c, d)
		require.NoError(t, err)
		dRecon := reconstruct(a, b, c, x)
		for i := range d {
			if d[i] == 0 {
				assert.Less(t, math.Abs(dRecon[i]), 1e-10)
				continue
			}
			relErr := math.Abs(dRecon[i]-d[i]) / math.Abs(d[i])
			assert.Less(t, relErr, 1e-10)
		}
	}
}

func TestThomasSimpleSystem(t *testing.T) {
	// [2 -1  0][x0]   [1]
	// [-1 2 -1][x1] = [0]
	// [0 -1  2][x2]   [1]
	a := []float64{0, -1, -1}
	b := []float64{2, 2, 2}
	c := []float64{-1, -1, 0}
	d := []float64{1, 0, 1}
	x, err := Thomas(a, b, c, d)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x[0], 1e-9)
	assert.InDelta(t, 1.0, x[1], 1e-9)
	assert.InDelta(t, 1.0, x[2], 1e-9)
}

func TestThomasZeroPivotBreaks(t *testing.T) {
	a := []float64{0, 1}
	b := []float64{0, 1}
	c := []float64{1, 0}
	d := []float64{1, 1}
	_, err := Thomas(a, b, c, d)
	require.Error(t, err)
	var breakdownErr *ErrNumericalBreakdown
	require.ErrorAs(t, err, &breakdownErr)
}

func TestSolverReuseAcrossCalls(t *testing.T) {
	s := NewSolver(3)
	a := []float64{0, -1, -1}
	b := []float64{2, 2, 2}
	c := []float64{-1, -1, 0}
	d := []float64{1, 0, 1}
	out := make([]float64, 3)
	require.NoError(t, s.Solve(a, b, c, d, out))
	assert.InDelta(t, 1.0, out[1], 1e-9)

	d2 := []float64{4, 0, 0}
	require.NoError(t, s.Solve(a, b, c, d2, out))
	dRecon := reconstruct(a, b, c, out)
	for i := range d2 {
		assert.InDelta(t, d2[i], dRecon[i], 1e-9)
	}
}
