package fluid

import (
	"sort"

	"gonum.org/v1/gonum/interp"
)

// monotoneTable wraps a gonum piecewise-linear fit over an immutable,
// monotonically increasing grid, clamping any query outside the grid to
// the nearest endpoint value rather than letting Predict panic. This is
// the "immutable lookup array with monotone search and linear
// interpolation" that §9 of the specification calls for.
type monotoneTable struct {
	xs, ys []float64
	fit    interp.PiecewiseLinear
}

func newMonotoneTable(xs, ys []float64) *monotoneTable {
	if !sort.Float64sAreSorted(xs) {
		panic("fluid: table grid must be sorted ascending")
	}
	t := &monotoneTable{xs: xs, ys: ys}
	if err := t.fit.Fit(xs, ys); err != nil {
		panic("fluid: invalid table grid: " + err.Error())
	}
	return t
}

func (t *monotoneTable) at(x float64) float64 {
	lo, hi := t.xs[0], t.xs[len(t.xs)-1]
	switch {
	case x <= lo:
		return t.ys[0]
	case x >= hi:
		return t.ys[len(t.ys)-1]
	default:
		return t.fit.Predict(x)
	}
}

// bilinearTable is a small immutable (T,P) grid with bilinear
// interpolation in the interior and a caller-supplied extrapolation
// hook outside it. gonum's interp package has no 2D facility, so this
// is a direct, hand-rolled bilinear lookup grounded on the reference
// implementation's table layout.
type bilinearTable struct {
	ts, ps []float64 // strictly increasing grids
	values [][]float64 // values[i][j] at (ts[i], ps[j])
}

func newBilinearTable(ts, ps []float64, values [][]float64) *bilinearTable {
	if !sort.Float64sAreSorted(ts) || !sort.Float64sAreSorted(ps) {
		panic("fluid: bilinear table grids must be sorted ascending")
	}
	return &bilinearTable{ts: ts, ps: ps, values: values}
}

// locate returns the index i such that grid[i] <= x < grid[i+1],
// clamped into [0, len(grid)-2], plus whether x fell outside the grid
// on the low or high side.
func locate(grid []float64, x float64) (idx int, low, high bool) {
	if x < grid[0] {
		return 0, true, false
	}
	if x > grid[len(grid)-1] {
		return len(grid) - 2, false, true
	}
	i := sort.SearchFloat64s(grid, x)
	if i >= len(grid)-1 {
		i = len(grid) - 2
	} else if i > 0 && grid[i] > x {
		i--
	}
	return i, false, false
}

// at returns the bilinearly interpolated value at (t,p) together with
// whether the query fell outside the T or P grid (so the caller can
// apply its own extrapolation policy and emit a diagnostic).
func (b *bilinearTable) at(t, p float64) (value float64, tOut, pOut bool) {
	it, tLow, tHigh := locate(b.ts, t)
	ip, pLow, pHigh := locate(b.ps, p)
	tOut = tLow || tHigh
	pOut = pLow || pHigh

	tc := clamp(t, b.ts[0], b.ts[len(b.ts)-1])
	pc := clamp(p, b.ps[0], b.ps[len(b.ps)-1])

	t0, t1 := b.ts[it], b.ts[it+1]
	p0, p1 := b.ps[ip], b.ps[ip+1]
	q11 := b.values[it][ip]
	q21 := b.values[it+1][ip]
	q12 := b.values[it][ip+1]
	q22 := b.values[it+1][ip+1]

	switch {
	case t1 != t0 && p1 != p0:
		u := (tc - t0) / (t1 - t0)
		v := (pc - p0) / (p1 - p0)
		value = (1-u)*(1-v)*q11 + u*(1-v)*q21 + (1-u)*v*q12 + u*v*q22
	case t1 != t0:
		u := (tc - t0) / (t1 - t0)
		value = q11 + u*(q21-q11)
	case p1 != p0:
		v := (pc - p0) / (p1 - p0)
		value = q11 + v*(q12-q11)
	default:
		value = q11
	}
	return value, tOut, pOut
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
