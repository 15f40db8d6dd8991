package fluid

// Provider is the property-provider contract the solver consumes: pure
// functions of local state returning SI-unit thermophysical properties.
// The core driver never calls a correlation directly, so a calibration
// run can substitute a different working fluid without touching the
// PISO stencils.
type Provider interface {
	// Viscosity returns dynamic viscosity [Pa*s] at temperature T [K].
	Viscosity(T float64) float64
	// Conductivity returns thermal conductivity [W/(m*K)] at
	// temperature T [K] and pressure P [Pa].
	Conductivity(T, P float64) float64
	// SpecificHeat returns cp [J/(kg*K)] at temperature T [K].
	SpecificHeat(T float64) float64
	// SpecificHeatConstVolume returns cv [J/(kg*K)] at temperature T [K].
	SpecificHeatConstVolume(T float64) float64
}

// SodiumProvider implements Provider with the vapor-phase sodium
// correlations; it is the default fluid of the representative pipe
// configuration described by the specification.
type SodiumProvider struct{}

var _ Provider = SodiumProvider{}

func (SodiumProvider) Viscosity(T float64) float64               { return VaporViscosity(T) }
func (SodiumProvider) Conductivity(T, P float64) float64         { return VaporConductivity(T, P) }
func (SodiumProvider) SpecificHeat(T float64) float64            { return VaporSpecificHeat(T) }
func (SodiumProvider) SpecificHeatConstVolume(T float64) float64 { return VaporSpecificHeatConstVolume(T) }
