// Package numerics implements the dense linear-algebra primitives shared
// by every assembly stage of the PISO driver: the Thomas tridiagonal
// solver and the partition map used to fork cell-wise sweeps across
// goroutines.
package numerics

import "math"

// zeroPivotTol bounds how close a forward-elimination pivot may come to
// zero before the sweep is declared degenerate. The Thomas algorithm has
// no pivoting, so a true near-zero pivot means the system was not
// diagonally dominant at that row.
const zeroPivotTol = 1e-300

// Solver holds the scratch vectors used by Thomas across repeated solves
// of systems with the same length, so a driver running many time steps
// does not reallocate on every assembly. It is not safe for concurrent
// use; each assembly stage that solves concurrently with another should
// use its own Solver.
type Solver struct {
	cStar []float64
	dStar []float64
}

// NewSolver returns a Solver with scratch vectors sized for systems of
// length n. A zero Solver also works; Solve grows its scratch lazily.
func NewSolver(n int) *Solver {
	return &Solver{cStar: make([]float64, n), dStar: make([]float64, n)}
}

// Solve solves the tridiagonal system Ax=d, where a is the sub-diagonal
// (a[0] is unused), b is the main diagonal, c is the super-diagonal
// (c[n-1] is unused), and d is the right-hand side. x is written into
// out, which must have length n; out may alias d. Solve returns
// ErrNumericalBreakdown if a forward-elimination pivot rounds to zero.
func (s *Solver) Solve(a, b, c, d, out []float64) error {
	n := len(b)
	if cap(s.cStar) < n {
		s.cStar = make([]float64, n)
		s.dStar = make([]float64, n)
	}
	cStar := s.cStar[:n]
	dStar := s.dStar[:n]

	if math.Abs(b[0]) <= zeroPivotTol {
		return breakdown(0, b[0])
	}
	cStar[0] = c[0] / b[0]
	dStar[0] = d[0] / b[0]

	for i := 1; i < n; i++ {
		m := b[i] - a[i]*cStar[i-1]
		if math.Abs(m) <= zeroPivotTol {
			return breakdown(i, m)
		}
		cStar[i] = c[i] / m
		dStar[i] = (d[i] - a[i]*dStar[i-1]) / m
	}

	out[n-1] = dStar[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = dStar[i] - cStar[i]*out[i+1]
	}
	return nil
}

// Thomas is the allocating convenience form of Solve, for callers that
// solve a system once and do not need to reuse scratch space.
func Thomas(a, b, c, d []float64) ([]float64, error) {
	out := make([]float64, len(d))
	s := NewSolver(len(d))
	if err := s.Solve(a, b, c, d, out); err != nil {
		return nil, err
	}
	return out, nil
}
