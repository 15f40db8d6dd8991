// Package solver implements the compressible PISO time-step driver:
// the momentum predictor, the density-based pressure-correction
// equation, the Rhie-Chow face-flux interpolation, and the coupled
// energy update, orchestrated by a per-step driver over a uniform 1D
// collocated grid.
package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ThunderStrikeXX/rhoPISO/config"
)

// Fields holds the driver's flow state: the persistent node arrays
// (u, p, T, rho), the per-step shadow copies taken at the start of each
// step, and the padded pressure buffer that realizes the ghost-cell
// boundary stencil of spec §3. The turbulence arrays live in
// turbulence.State, not here. The driver owns every array here; the
// assembly functions take *Fields and return their coefficients in new
// slices, and the solve and correction functions write u, p and T in
// place.
type Fields struct {
	N int

	U   *mat.VecDense
	P   *mat.VecDense
	T   *mat.VecDense
	Rho *mat.VecDense

	// PPadded has length N+2; PPadded.AtVec(i+1) == P.AtVec(i) for
	// i in [0,N), PPadded.AtVec(0) mirrors P.AtVec(0), and
	// PPadded.AtVec(N+1) holds the Dirichlet outlet pressure.
	PPadded *mat.VecDense

	TOld   *mat.VecDense
	RhoOld *mat.VecDense
	POld   *mat.VecDense
}

// NewFields allocates and initializes Fields from the run
// configuration: uniform initial u, p, T and an EOS-consistent initial
// density.
func NewFields(cfg *config.RunConfig) *Fields {
	n := cfg.Cells
	f := &Fields{
		N:         n,
		U:         mat.NewVecDense(n, constSlice(n, cfg.InitU)),
		P:         mat.NewVecDense(n, constSlice(n, cfg.InitP)),
		T:         mat.NewVecDense(n, constSlice(n, cfg.InitT)),
		Rho:       mat.NewVecDense(n, constSlice(n, cfg.InitP/(cfg.Rv*cfg.InitT))),
		PPadded:   mat.NewVecDense(n+2, constSlice(n+2, cfg.InitP)),
		TOld:   mat.NewVecDense(n, constSlice(n, cfg.InitT)),
		RhoOld: mat.NewVecDense(n, constSlice(n, cfg.InitP/(cfg.Rv*cfg.InitT))),
		POld:   mat.NewVecDense(n, constSlice(n, cfg.InitP)),
	}
	f.RefreshPaddedPressure(cfg.POutlet)
	return f
}

func constSlice(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Data returns the raw backing slice of v for hot-loop access, the
// same RawVector/RawMatrix unwrapping pattern the teacher's utils
// package uses before tight numeric loops.
func Data(v *mat.VecDense) []float64 { return v.RawVector().Data }

// Backup snapshots T, Rho and P into TOld, RhoOld and POld, the
// "driver snapshots old fields" step of spec §2's per-step data flow.
func (f *Fields) Backup() {
	copy(Data(f.TOld), Data(f.T))
	copy(Data(f.RhoOld), Data(f.Rho))
	copy(Data(f.POld), Data(f.P))
}

// RefreshPaddedPressure rewrites PPadded from the current P: left
// ghost mirrors P[0], interior copies P, right ghost holds pOutlet.
// This is invariant 3 and 4 of spec §3/§8, re-established after every
// pressure update.
func (f *Fields) RefreshPaddedPressure(pOutlet float64) {
	p := Data(f.P)
	padded := Data(f.PPadded)
	copy(padded[1:f.N+1], p)
	padded[0] = p[0]
	padded[f.N+1] = pOutlet
}

// RefreshEOS recomputes Rho from the ideal-gas equation of state
// rho = p / (Rv * max(T, Tmin)), clamping the result to rhoMin. This
// implements invariants 1 and 2 of spec §3 (BoundClamp, spec §7) and
// is called after every phase that can have changed p or T.
func (f *Fields) RefreshEOS(Rv, tMin, rhoMin float64) {
	p := Data(f.P)
	t := Data(f.T)
	rho := Data(f.Rho)
	for i := range rho {
		Ti := t[i]
		if Ti < tMin {
			Ti = tMin
		}
		r := p[i] / (Rv * Ti)
		if r < rhoMin {
			r = rhoMin
		}
		rho[i] = r
	}
}
