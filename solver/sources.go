package solver

import "github.com/ThunderStrikeXX/rhoPISO/config"

// zoneSources builds the constant mass-source and energy-source arrays
// used by the momentum, pressure and energy assemblies. Per spec §3,
// the first srcFrac fraction of interior cells carries the source
// magnitude, the last sinkFrac fraction carries the sink magnitude
// (typically negative), and every cell in between carries zero. The
// boundary cells 0 and n-1 carry no source. The same zoning rule is
// applied independently to mass and energy with their own fractions
// and magnitudes.
func zoneSources(n int, srcFrac, sinkFrac, srcMag, sinkMag float64) []float64 {
	s := make([]float64, n)
	srcCount := int(srcFrac * float64(n))
	sinkCount := int(sinkFrac * float64(n))
	for i := 1; i <= srcCount && i < n-1; i++ {
		s[i] = srcMag
	}
	sinkStart := n - sinkCount
	if sinkStart < 1 {
		sinkStart = 1
	}
	for i := sinkStart; i < n-1; i++ {
		s[i] = sinkMag
	}
	return s
}

// MassSource returns the per-cell mass source term Sm [kg/(m^3*s)].
func MassSource(cfg *config.RunConfig) []float64 {
	return zoneSources(cfg.Cells, cfg.MassSourceFrac, cfg.MassSinkFrac,
		cfg.MassSourceMagnitude, cfg.MassSinkMagnitude)
}

// EnergySource returns the per-cell volumetric energy source term St
// [W/m^3].
func EnergySource(cfg *config.RunConfig) []float64 {
	return zoneSources(cfg.Cells, cfg.EnergySourceFrac, cfg.EnergySinkFrac,
		cfg.EnergySourceMagnitude, cfg.EnergySinkMagnitude)
}
