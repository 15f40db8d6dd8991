package solver

import (
	"math"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

// PressureSystem carries the tridiagonal pressure-correction
// coefficients and the compressible mass-imbalance residual that drove
// the assembly, exposed for the driver's convergence check.
type PressureSystem struct {
	A, B, C, D    []float64
	MassImbalance []float64
}

// faceMassFlux returns the star mass flux rho_face*u_face at internal
// face i, using the momentum predictor's InvAP for the Rhie-Chow
// smoothing term.
func faceMassFlux(rho, u, pPadded, invAP []float64, i int, dz float64, rhieChow bool) (float64, float64) {
	uf := FaceVelocity(u, pPadded, invAP, i, dz, rhieChow)
	rhoF := UpwindFace(rho, i, uf)
	return rhoF * uf, uf
}

// AssemblePressureCorrection builds the compressible pressure-
// correction system -aW*p'[i-1] + aP*p'[i] - aE*p'[i+1] = -imbalance[i]
// from the momentum predictor's star fluxes. The compressibility
// coefficient on the diagonal, drho/dp = 1/(Rv*T), is what makes this
// solver density-based rather than the incompressible pure-Poisson
// form: it lets a cell absorb a mass imbalance by changing density
// instead of only by changing velocity divergence.
func AssemblePressureCorrection(cfg *config.RunConfig, f *Fields, mom *MomentumSystem) *PressureSystem {
	n := f.N
	dz := cfg.Dz()
	dt := cfg.Dt

	u := Data(f.U)
	rho := Data(f.Rho)
	rhoOld := Data(f.RhoOld)
	t := Data(f.T)
	pPadded := Data(f.PPadded)
	sm := MassSource(cfg)

	sys := &PressureSystem{
		A: make([]float64, n), B: make([]float64, n), C: make([]float64, n), D: make([]float64, n),
		MassImbalance: make([]float64, n),
	}

	nf := faceCount(n)
	mdotStar := make([]float64, nf)
	for i := 0; i < nf; i++ {
		mdotStar[i], _ = faceMassFlux(rho, u, pPadded, mom.InvAP, i, dz, cfg.RhieChow)
	}

	drhodp := make([]float64, n)
	for i := 0; i < n; i++ {
		tClamped := math.Max(t[i], 200.0)
		drhodp[i] = 1.0 / (cfg.Rv * tClamped)
	}

	for i := 0; i < n; i++ {
		var mdotW, mdotE float64
		if i > 0 {
			mdotW = mdotStar[i-1]
		} else {
			mdotW = rho[i] * cfg.UInlet
		}
		if i < n-1 {
			mdotE = mdotStar[i]
		} else {
			mdotE = rho[i] * cfg.UOutlet
		}

		unsteady := (rho[i] - rhoOld[i]) * dz / dt
		imbalance := (mdotE - mdotW) + unsteady - sm[i]*dz
		sys.MassImbalance[i] = imbalance

		var aW, aE float64
		if i > 0 {
			rhoFaceW := 0.5 * (rho[i] + rho[i-1])
			dFaceW := 0.5 * (mom.InvAP[i] + mom.InvAP[i-1])
			aW = rhoFaceW * dFaceW / dz
		}
		if i < n-1 {
			rhoFaceE := 0.5 * (rho[i] + rho[i+1])
			dFaceE := 0.5 * (mom.InvAP[i] + mom.InvAP[i+1])
			aE = rhoFaceE * dFaceE / dz
		}
		aP0 := drhodp[i] * dz / dt
		aP := aW + aE + aP0

		if i == 0 {
			sys.A[i] = 0
		} else {
			sys.A[i] = -aW
		}
		if i == n-1 {
			sys.C[i] = 0
		} else {
			sys.C[i] = -aE
		}
		sys.B[i] = aP
		sys.D[i] = -imbalance
	}

	return sys
}

// ApplyCorrection adds the solved pressure correction pPrime to p, the
// resulting central-difference velocity correction to the interior u
// (scaled by the momentum predictor's InvAP; the Dirichlet boundary
// velocities are left as imposed), and refreshes the padded pressure
// buffer. It does not update rho; RunPISO refreshes the equation of
// state after each call.
func ApplyCorrection(cfg *config.RunConfig, f *Fields, mom *MomentumSystem, pPrime []float64) {
	n := f.N
	dz := cfg.Dz()
	p := Data(f.P)
	u := Data(f.U)

	padded := make([]float64, n+2)
	copy(padded[1:n+1], pPrime)
	padded[0] = pPrime[0]
	padded[n+1] = 0 // pressure correction is zero-Dirichlet at the fixed outlet

	for i := 0; i < n; i++ {
		p[i] += pPrime[i]
	}
	for i := 1; i < n-1; i++ {
		grad := (padded[i+2] - padded[i]) / (2 * dz)
		u[i] -= mom.InvAP[i] * grad
	}
	f.RefreshPaddedPressure(cfg.POutlet)
}

// ResidualNorm returns the root-mean-square of a mass-imbalance vector
// (its L2 norm divided by the square root of the cell count), the
// convergence metric compared against
// config.Tolerance in the PISO outer loop.
func ResidualNorm(residual []float64) float64 {
	sum := 0.0
	for _, r := range residual {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(residual)))
}

// RunPISO drives the pressure-velocity coupling for one time step: an
// outer loop (bounded by cfg.MaxIter) each iterating a momentum
// predictor and cfg.CorrectorIter pressure correctors, stopping early
// once the mass-imbalance residual falls below cfg.Tolerance. It
// returns the final momentum predictor's system so the caller's energy
// assembly can read the same InvAP the last Rhie-Chow pass used,
// instead of re-deriving an unrelated estimate.
func RunPISO(cfg *config.RunConfig, f *Fields, thomas *numerics.Solver, provider fluid.Provider, pm *numerics.PartitionMap) (int, *MomentumSystem, error) {
	// First outer iteration has no prior predictor to read InvAP from;
	// seed it with the grid spacing (aP ~ 1) so the first Rhie-Chow pass
	// still applies some smoothing rather than none.
	invAP := make([]float64, f.N)
	for i := range invAP {
		invAP[i] = cfg.Dz()
	}

	var mom *MomentumSystem
	for outer := 0; outer < cfg.MaxIter; outer++ {
		mom = AssembleMomentum(cfg, f, invAP, provider, pm)
		if err := SolveMomentum(thomas, f, mom); err != nil {
			return outer, mom, err
		}
		invAP = mom.InvAP

		var lastResidual float64
		for c := 0; c < cfg.CorrectorIter; c++ {
			sys := AssemblePressureCorrection(cfg, f, mom)
			pPrime := make([]float64, f.N)
			if err := thomas.Solve(sys.A, sys.B, sys.C, sys.D, pPrime); err != nil {
				return outer, mom, err
			}
			ApplyCorrection(cfg, f, mom, pPrime)
			f.RefreshEOS(cfg.Rv, 200.0, 1e-6)
			lastResidual = ResidualNorm(sys.MassImbalance)
		}

		if lastResidual < cfg.Tolerance {
			return outer + 1, mom, nil
		}
	}
	return cfg.MaxIter, mom, nil
}
