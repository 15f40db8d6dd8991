package solver

import (
	"math"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

// MomentumSystem carries the tridiagonal momentum-predictor
// coefficients plus the per-cell 1/aP array that the following
// pressure-correction and Rhie-Chow stages both need: the correction
// equation averages it onto the faces as the coefficient of the
// pressure Laplacian, and the next predictor's Rhie-Chow face velocity
// uses the previous predictor's copy of it, exactly as rhoPISO's
// bVU[i] is read one predictor behind the assembly that produced it.
type MomentumSystem struct {
	A, B, C, D []float64
	InvAP      []float64
}

// AssembleMomentum builds the momentum-predictor tridiagonal system
// a*u[i-1] + b*u[i] + c*u[i+1] = d for every cell, using the previous
// predictor's InvAP for the Rhie-Chow face velocities that determine
// the convected mass flux. Boundary cells absorb the Dirichlet inlet
// and outlet velocities into the right-hand side rather than widening
// the stencil.
func AssembleMomentum(cfg *config.RunConfig, f *Fields, prevInvAP []float64, provider fluid.Provider, pm *numerics.PartitionMap) *MomentumSystem {
	n := f.N
	dz := cfg.Dz()
	dt := cfg.Dt

	u := Data(f.U)
	rho := Data(f.Rho)
	rhoOld := Data(f.RhoOld)
	t := Data(f.T)
	pPadded := Data(f.PPadded)
	sm := MassSource(cfg)

	sys := &MomentumSystem{
		A: make([]float64, n), B: make([]float64, n), C: make([]float64, n), D: make([]float64, n),
		InvAP: make([]float64, n),
	}

	mu := make([]float64, n)
	pm.ForEach(func(begin, end int) {
		for i := begin; i < end; i++ {
			mu[i] = provider.Viscosity(t[i])
		}
	})

	faceVel := make([]float64, faceCount(n))
	pm.ForEach(func(begin, end int) {
		for i := begin; i < end; i++ {
			if i >= faceCount(n) {
				continue
			}
			faceVel[i] = FaceVelocity(u, pPadded, prevInvAP, i, dz, cfg.RhieChow)
		}
	})

	pm.ForEach(func(begin, end int) {
		for i := begin; i < end; i++ {
			aP0 := rhoOld[i] * dz / dt

			// Boundary rows are decoupled Dirichlet rows: the inlet/outlet
			// velocity is imposed exactly, with no coupling to the
			// interior neighbor, matching rhoPISO.cpp's boundary rows for
			// aVU/bVU/cVU/dVU.
			if i == 0 || i == n-1 {
				dEnd := (4.0 / 3.0) * mu[i] / (0.5 * dz)
				bEnd := aP0 + 2*dEnd
				uBC := cfg.UInlet
				if i == n-1 {
					uBC = cfg.UOutlet
				}
				sys.A[i] = 0
				sys.C[i] = 0
				sys.B[i] = bEnd
				sys.D[i] = bEnd * uBC
				sys.InvAP[i] = dz / bEnd
				continue
			}

			rhoFaceW := UpwindFace(rho, i-1, faceVel[i-1])
			Fw := rhoFaceW * faceVel[i-1]
			Dw := (4.0 / 3.0) * 0.5 * (mu[i-1] + mu[i]) / dz

			rhoFaceE := UpwindFace(rho, i, faceVel[i])
			Fe := rhoFaceE * faceVel[i]
			De := (4.0 / 3.0) * 0.5 * (mu[i] + mu[i+1]) / dz

			spImplicit := 0.0
			suExplicit := 0.0
			if sm[i] < 0 {
				spImplicit = -sm[i] * dz
			} else {
				suExplicit = sm[i] * dz * u[i]
			}

			faceP_w := 0.5 * (pPadded[i] + pPadded[i+1])
			faceP_e := 0.5 * (pPadded[i+1] + pPadded[i+2])
			pressureTerm := -(faceP_e - faceP_w)

			aU := -math.Max(Fw, 0) - Dw
			cU := math.Max(-Fe, 0) - De
			bU := (math.Max(Fe, 0) - math.Max(-Fw, 0)) + aP0 + Dw + De + spImplicit

			sys.A[i] = aU
			sys.C[i] = cU
			sys.B[i] = bU
			sys.D[i] = aP0*u[i] + pressureTerm + suExplicit
			sys.InvAP[i] = dz / bU
		}
	})

	return sys
}

// SolveMomentum runs the Thomas solve for sys and writes the result
// into f.U in place.
func SolveMomentum(solver *numerics.Solver, f *Fields, sys *MomentumSystem) error {
	return solver.Solve(sys.A, sys.B, sys.C, sys.D, Data(f.U))
}
