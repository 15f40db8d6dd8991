// Package turbulence implements an optional two-equation k-omega
// closure for the PISO driver: transport equations for turbulent
// kinetic energy and specific dissipation rate, and the eddy-viscosity
// relation that feeds the energy equation's effective conductivity.
package turbulence

import (
	"math"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/numerics"
)

// Closure constants for the standard Wilcox k-omega model.
const (
	SigmaK     = 0.85
	SigmaOmega = 0.5
	BetaStar   = 0.09
	Beta       = 0.075
	Alpha      = 5.0 / 9.0

	// ViscosityRatioCap bounds mu_t/mu, the realizability limit applied
	// after every update so a locally degenerate k/omega pair cannot
	// produce an unbounded eddy viscosity.
	ViscosityRatioCap = 1000.0
)

// State holds the turbulence fields and the scratch Thomas solver
// shared by both transport equations.
type State struct {
	K, Omega []float64
	MuT      []float64

	k0, omega0 float64
	thomas     *numerics.Solver
}

// NewState allocates a State initialized to the freestream k0/omega0
// derived from the configured turbulence intensity and a turbulence
// length scale proportional to the pipe length, the same inlet closure used
// to freeze the boundary values of both transport equations.
func NewState(cfg *config.RunConfig, uInlet float64) *State {
	n := cfg.Cells
	k0, omega0 := InletClosure(cfg, uInlet)
	s := &State{
		K:      make([]float64, n),
		Omega:  make([]float64, n),
		MuT:    make([]float64, n),
		k0:     k0,
		omega0: omega0,
		thomas: numerics.NewSolver(n),
	}
	for i := range s.K {
		s.K[i] = k0
		s.Omega[i] = omega0
	}
	return s
}

// InletClosure returns the inlet turbulent kinetic energy and specific
// dissipation rate implied by turbulence intensity I and a length
// scale L_t = 0.07*L (the pipe-flow mixing-length fraction used for a
// fully developed duct flow).
func InletClosure(cfg *config.RunConfig, uInlet float64) (k0, omega0 float64) {
	uRef := uInlet
	if uRef == 0 {
		uRef = cfg.InitU
	}
	I := cfg.TurbulenceIntensity
	k0 = 1.5 * math.Pow(I*uRef, 2)
	if k0 <= 0 {
		k0 = 1.5 * I * I
	}
	Lt := 0.07 * cfg.Length
	omega0 = math.Sqrt(k0) / (math.Sqrt(BetaStar) * Lt)
	return k0, omega0
}

// production returns the shear-production rate mu_t*(du/dz)^2 at cell
// i, using a one-sided difference at either boundary.
func production(u []float64, muT []float64, i, n int, dz float64) float64 {
	var dudz float64
	switch {
	case i == 0:
		dudz = (u[1] - u[0]) / dz
	case i == n-1:
		dudz = (u[n-1] - u[n-2]) / dz
	default:
		dudz = (u[i+1] - u[i-1]) / (2 * dz)
	}
	return muT[i] * dudz * dudz
}

// Step advances k and omega by one implicit time step with frozen
// Dirichlet boundary values at both ends (the inflow closure is
// assumed to persist unchanged at the outlet too, matching a pipe
// segment with no turbulence source past the domain), then refreshes
// MuT from the updated pair.
func (s *State) Step(cfg *config.RunConfig, u, rho, rhoOld []float64, mu []float64) error {
	n := len(s.K)
	dz := cfg.Dz()
	dt := cfg.Dt

	kSys := s.assembleK(n, dz, dt, u, rho, rhoOld, mu)
	newK := make([]float64, n)
	if err := s.thomas.Solve(kSys.A, kSys.B, kSys.C, kSys.D, newK); err != nil {
		return err
	}

	omegaSys := s.assembleOmega(n, dz, dt, u, rho, rhoOld, mu)
	newOmega := make([]float64, n)
	if err := s.thomas.Solve(omegaSys.A, omegaSys.B, omegaSys.C, omegaSys.D, newOmega); err != nil {
		return err
	}

	copy(s.K, newK)
	copy(s.Omega, newOmega)
	s.K[0], s.K[n-1] = s.k0, s.k0
	s.Omega[0], s.Omega[n-1] = s.omega0, s.omega0

	for i := 0; i < n; i++ {
		s.MuT[i] = rho[i] * s.K[i] / math.Max(s.Omega[i], 1e-12)
		cap := ViscosityRatioCap * mu[i]
		if s.MuT[i] > cap {
			s.MuT[i] = cap
		}
		if s.MuT[i] < 0 {
			s.MuT[i] = 0
		}
	}
	return nil
}

type tridiag struct{ A, B, C, D []float64 }

func (s *State) assembleK(n int, dz, dt float64, u, rho, rhoOld, mu []float64) *tridiag {
	sys := &tridiag{A: make([]float64, n), B: make([]float64, n), C: make([]float64, n), D: make([]float64, n)}
	for i := 0; i < n; i++ {
		aP0 := rhoOld[i] * dz / dt
		muEffW, muEffE := 0.0, 0.0
		if i > 0 {
			muEffW = (mu[i-1] + SigmaK*s.MuT[i-1] + mu[i] + SigmaK*s.MuT[i]) / 2 / dz
		}
		if i < n-1 {
			muEffE = (mu[i] + SigmaK*s.MuT[i] + mu[i+1] + SigmaK*s.MuT[i+1]) / 2 / dz
		}
		production_i := production(u, s.MuT, i, n, dz)
		destruction := BetaStar * rho[i] * s.Omega[i]

		aP := muEffW + muEffE + aP0 + destruction*dz
		d := aP0*s.K[i] + production_i*dz

		if i == 0 {
			sys.A[i], sys.B[i], sys.C[i], sys.D[i] = 0, 1, 0, s.k0
			continue
		}
		if i == n-1 {
			sys.A[i], sys.B[i], sys.C[i], sys.D[i] = 0, 1, 0, s.k0
			continue
		}
		sys.A[i] = -muEffW
		sys.C[i] = -muEffE
		sys.B[i] = aP
		sys.D[i] = d
	}
	return sys
}

func (s *State) assembleOmega(n int, dz, dt float64, u, rho, rhoOld, mu []float64) *tridiag {
	sys := &tridiag{A: make([]float64, n), B: make([]float64, n), C: make([]float64, n), D: make([]float64, n)}
	for i := 0; i < n; i++ {
		aP0 := rhoOld[i] * dz / dt
		muEffW, muEffE := 0.0, 0.0
		if i > 0 {
			muEffW = (mu[i-1] + SigmaOmega*s.MuT[i-1] + mu[i] + SigmaOmega*s.MuT[i]) / 2 / dz
		}
		if i < n-1 {
			muEffE = (mu[i] + SigmaOmega*s.MuT[i] + mu[i+1] + SigmaOmega*s.MuT[i+1]) / 2 / dz
		}
		prodK := production(u, s.MuT, i, n, dz)
		var productionOmega float64
		if s.MuT[i] > 1e-12 {
			productionOmega = Alpha * rho[i] * prodK / s.MuT[i]
		}
		destruction := Beta * rho[i] * s.Omega[i]

		aP := muEffW + muEffE + aP0 + destruction*dz
		d := aP0*s.Omega[i] + productionOmega*dz

		if i == 0 {
			sys.A[i], sys.B[i], sys.C[i], sys.D[i] = 0, 1, 0, s.omega0
			continue
		}
		if i == n-1 {
			sys.A[i], sys.B[i], sys.C[i], sys.D[i] = 0, 1, 0, s.omega0
			continue
		}
		sys.A[i] = -muEffW
		sys.C[i] = -muEffE
		sys.B[i] = aP
		sys.D[i] = d
	}
	return sys
}
