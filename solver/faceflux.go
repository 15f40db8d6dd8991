package solver

import "math"

// faceCount returns the number of internal faces of an n-cell grid.
func faceCount(n int) int { return n - 1 }

// compactPressureGradient returns (p[i+1]-p[i])/dz, the two-point
// gradient across face i (between cell i and cell i+1), read out of
// the padded pressure buffer so no branch is needed at the domain
// ends.
func compactPressureGradient(pPadded []float64, i int, dz float64) float64 {
	return (pPadded[i+2] - pPadded[i+1]) / dz
}

// linearPressureGradient returns the average of the two neighboring
// cell-centered gradients spanning face i (the p[i-1]..p[i+1] gradient
// at cell i and the p[i]..p[i+2] gradient at cell i+1), the wide
// stencil that Rhie-Chow interpolation subtracts off to cancel the
// odd-even pressure decoupling mode of a collocated grid.
func linearPressureGradient(pPadded []float64, i int, dz float64) float64 {
	left := (pPadded[i+2] - pPadded[i]) / (2 * dz)
	right := (pPadded[i+3] - pPadded[i+1]) / (2 * dz)
	return 0.5 * (left + right)
}

// FaceVelocity returns the mass-conserving face velocity at internal
// face i (between cell i and cell i+1). With Rhie-Chow smoothing
// enabled it adds the momentum-coefficient-weighted correction that
// removes checkerboard pressure oscillations on the collocated grid;
// with it disabled the face velocity is the bare linear average, which
// is free to checkerboard under a pressure-only driving force (spec
// scenario comparing the two modes).
func FaceVelocity(u, pPadded, invAP []float64, i int, dz float64, rhieChow bool) float64 {
	ubar := 0.5 * (u[i] + u[i+1])
	if !rhieChow {
		return ubar
	}
	dFace := 0.5 * (invAP[i] + invAP[i+1])
	compact := compactPressureGradient(pPadded, i, dz)
	linear := linearPressureGradient(pPadded, i, dz)
	return ubar - dFace*(compact-linear)
}

// UpwindFace returns the value of a cell-centered quantity at face i
// selected by the upwind direction of the given face velocity, the
// max(F,0)-convention convection weighting used throughout the
// assemblies.
func UpwindFace(values []float64, i int, faceVel float64) float64 {
	if faceVel >= 0 {
		return values[i]
	}
	return values[i+1]
}

// harmonicMean returns the harmonic mean of two positive diffusivities,
// the standard face-conductivity interpolation for a diffusion term
// between two cells of possibly very different properties.
func harmonicMean(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// courantNumber returns |u|*dt/dz for a single cell, used only for the
// per-step diagnostic report; it plays no role in the assembly.
func courantNumber(u, dt, dz float64) float64 {
	return math.Abs(u) * dt / dz
}
