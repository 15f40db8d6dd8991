package solver

import (
	"math"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

// EnergySystem carries the tridiagonal energy-equation coefficients.
type EnergySystem struct {
	A, B, C, D []float64
}

// AssembleEnergy builds the temperature tridiagonal system from the
// already-corrected velocity and pressure fields. Conduction uses the
// turbulence-augmented effective conductivity when turbulence is
// enabled (k_eff = k_molecular + cp*mu_t/Pr_t), convection uses the
// same upwind convention as the momentum assembly, and the pressure
// work term (p[i]-p_old[i])/dt is added explicitly as the temporal
// compression/expansion work on the cell. Both ends use a
// zero-gradient temperature boundary row (b=1, c=-1, d=0), forcing the
// solved boundary temperature to equal its interior neighbor exactly.
func AssembleEnergy(cfg *config.RunConfig, f *Fields, mom *MomentumSystem, muT []float64, provider fluid.Provider, pm *numerics.PartitionMap) *EnergySystem {
	n := f.N
	dz := cfg.Dz()
	dt := cfg.Dt

	u := Data(f.U)
	rho := Data(f.Rho)
	rhoOld := Data(f.RhoOld)
	t := Data(f.T)
	tOld := Data(f.TOld)
	p := Data(f.P)
	pOld := Data(f.POld)
	pPadded := Data(f.PPadded)
	st := EnergySource(cfg)

	cp := make([]float64, n)
	kMol := make([]float64, n)
	pm.ForEach(func(begin, end int) {
		for i := begin; i < end; i++ {
			cp[i] = provider.SpecificHeat(t[i])
			kMol[i] = provider.Conductivity(t[i], f.P.AtVec(i))
		}
	})

	kEff := make([]float64, n)
	for i := 0; i < n; i++ {
		kEff[i] = kMol[i]
		if cfg.Turbulence && muT != nil {
			kEff[i] += cp[i] * muT[i] / cfg.PrandtlT
		}
	}

	sys := &EnergySystem{
		A: make([]float64, n), B: make([]float64, n), C: make([]float64, n), D: make([]float64, n),
	}

	nf := faceCount(n)
	faceVel := make([]float64, nf)
	for i := 0; i < nf; i++ {
		faceVel[i] = FaceVelocity(u, pPadded, mom.InvAP, i, dz, cfg.RhieChow)
	}

	for i := 0; i < n; i++ {
		rhoCpOld := rhoOld[i] * cp[i]
		aP0 := rhoCpOld * dz / dt

		var Cw, Ce, Dw, De float64
		if i > 0 {
			rhoFaceW := UpwindFace(rho, i-1, faceVel[i-1])
			cpFaceW := UpwindFace(cp, i-1, faceVel[i-1])
			Cw = rhoFaceW * cpFaceW * faceVel[i-1]
			Dw = harmonicMean(kEff[i-1], kEff[i]) / dz
		}
		if i < n-1 {
			rhoFaceE := UpwindFace(rho, i, faceVel[i])
			cpFaceE := UpwindFace(cp, i, faceVel[i])
			Ce = rhoFaceE * cpFaceE * faceVel[i]
			De = harmonicMean(kEff[i], kEff[i+1]) / dz
		}

		aW := Dw + math.Max(Cw, 0)
		aE := De - math.Max(-Ce, 0)
		aP := (math.Max(Ce, 0) - math.Max(-Cw, 0)) + Dw + De + aP0

		pressureWork := (p[i] - pOld[i]) / dt

		d := aP0*tOld[i] + st[i]*dz + pressureWork*dz

		if i == 0 || i == n-1 {
			sys.A[i] = 0
			sys.B[i] = 1
			sys.C[i] = 0
			sys.D[i] = 0
			if i == 0 {
				sys.C[i] = -1
			} else {
				sys.A[i] = -1
			}
			continue
		}

		sys.A[i] = -aW
		sys.C[i] = -aE
		sys.B[i] = aP
		sys.D[i] = d
	}

	return sys
}

// SolveEnergy runs the Thomas solve for sys and writes the result into
// f.T in place.
func SolveEnergy(solver *numerics.Solver, f *Fields, sys *EnergySystem) error {
	return solver.Solve(sys.A, sys.B, sys.C, sys.D, Data(f.T))
}
