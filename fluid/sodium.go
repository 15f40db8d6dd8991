// Package fluid provides temperature- and pressure-dependent
// thermophysical property correlations for liquid and vapor sodium, the
// working fluid of the representative pipe-flow configuration. Every
// exported function is a pure function of its arguments except for the
// diagnostic logging performed when an input falls outside a
// correlation's validated range.
package fluid

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Logger receives warnings when a property correlation extrapolates
// outside its validated range (ErrOutOfRangeExtrapolation in spec
// terms). It defaults to the standard logger and may be overridden by
// the driver to route diagnostics through its own logger instance.
var Logger = logrus.StandardLogger()

// Sodium critical temperature [K], shared by the liquid and vapor
// correlations.
const sodiumCriticalTemperature = 2509.46

// LiquidDensity returns the density of liquid sodium [kg/m^3] at
// temperature T [K].
func LiquidDensity(T float64) float64 {
	r := 1.0 - T/sodiumCriticalTemperature
	return 219.0 + 275.32*r + 511.58*math.Sqrt(math.Max(r, 0))
}

// LiquidConductivity returns the thermal conductivity of liquid sodium
// [W/(m*K)] at temperature T [K].
func LiquidConductivity(T float64) float64 {
	return 124.67 - 0.11381*T + 5.5226e-5*T*T - 1.1842e-8*T*T*T
}

// LiquidSpecificHeat returns the specific heat of liquid sodium
// [J/(kg*K)] at temperature T [K].
func LiquidSpecificHeat(T float64) float64 {
	dT := T - 273.15
	return 1436.72 - 0.58*dT + 4.627e-4*dT*dT
}

// LiquidViscosity returns the dynamic viscosity of liquid sodium [Pa*s]
// at temperature T [K], valid for 371 K < T < 2500 K (Shpilrain et al.).
func LiquidViscosity(T float64) float64 {
	return math.Exp(-6.4406 - 0.3958*math.Log(T) + 556.835/T)
}

// HeatOfVaporization returns the enthalpy of vaporization of sodium
// [J/kg] at temperature T [K].
func HeatOfVaporization(T float64) float64 {
	r := 1.0 - T/sodiumCriticalTemperature
	return (393.37*r + 4398.6*math.Pow(r, 0.29302)) * 1e3
}

// SaturationPressure returns the saturation vapor pressure of sodium
// [Pa] at temperature T [K].
func SaturationPressure(T float64) float64 {
	megapascal := math.Exp(11.9463 - 12633.7/T - 0.4672*math.Log(T))
	return megapascal * 1e6
}

// SaturationPressureDerivative returns dP_sat/dT [Pa/K] at temperature
// T [K].
func SaturationPressureDerivative(T float64) float64 {
	megapascalPerKelvin := (12633.73/(T*T) - 0.4672/T) *
		math.Exp(11.9463-12633.73/T-0.4672*math.Log(T))
	return megapascalPerKelvin * 1e6
}

// VaporDensity returns the density of saturated sodium vapor [kg/m^3]
// at temperature T [K], via the Clausius-Clapeyron relation referenced
// to the liquid density.
func VaporDensity(T float64) float64 {
	hv := HeatOfVaporization(T)
	dPdT := SaturationPressureDerivative(T)
	rhoLiquid := LiquidDensity(T)
	denom := hv/(T*dPdT) + 1.0/rhoLiquid
	return 1.0 / denom
}

// VaporViscosity returns the dynamic viscosity of sodium vapor [Pa*s]
// at temperature T [K].
func VaporViscosity(T float64) float64 {
	return 6.083e-9*T + 1.2606e-5
}

var vaporCpTable = newMonotoneTable(
	[]float64{400, 500, 600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300, 2400},
	[]float64{860, 1250, 1800, 2280, 2590, 2720, 2700, 2620, 2510, 2430, 2390, 2360, 2340, 2410, 2460, 2530, 2660, 2910, 3400, 4470, 8030},
)

var vaporCvTable = newMonotoneTable(
	[]float64{400, 500, 600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300, 2400},
	[]float64{490, 840, 1310, 1710, 1930, 1980, 1920, 1810, 1680, 1580, 1510, 1440, 1390, 1380, 1360, 1330, 1300, 1300, 1340, 1440, 1760},
)

const (
	vaporCpNearCritical = 417030.0
	vaporCvNearCritical = 17030.0
	vaporNearCritical   = 2500.0
)

// VaporSpecificHeat returns cp of sodium vapor [J/(kg*K)] at temperature
// T [K], table-interpolated with a fixed value above the near-critical
// cutoff where the table becomes numerically extreme.
func VaporSpecificHeat(T float64) float64 {
	if T >= vaporNearCritical {
		return vaporCpNearCritical
	}
	return vaporCpTable.at(T)
}

// VaporSpecificHeatConstVolume returns cv of sodium vapor [J/(kg*K)] at
// temperature T [K], table-interpolated with the same near-critical
// cutoff as VaporSpecificHeat.
func VaporSpecificHeatConstVolume(T float64) float64 {
	if T >= vaporNearCritical {
		return vaporCvNearCritical
	}
	return vaporCvTable.at(T)
}

var vaporConductivityTable = newBilinearTable(
	[]float64{900, 1000, 1100, 1200, 1300, 1400, 1500},
	[]float64{981, 4903, 9807, 49033, 98066},
	[][]float64{
		{0.035796, 0.0379, 0.0392, 0.0415, 0.0422},
		{0.034053, 0.043583, 0.049627, 0.0511, 0.0520},
		{0.036029, 0.039399, 0.043002, 0.060900, 0.0620},
		{0.039051, 0.040445, 0.042189, 0.052881, 0.061133},
		{0.042189, 0.042886, 0.043816, 0.049859, 0.055554},
		{0.045443, 0.045908, 0.046373, 0.049859, 0.054508},
		{0.048930, 0.049162, 0.049511, 0.051603, 0.054043},
	},
)

// VaporConductivity returns the thermal conductivity of sodium vapor
// [W/(m*K)] at temperature T [K] and pressure P [Pa]. Inside the
// experimental (T,P) grid the value is bilinearly interpolated; outside
// it, a kinetic-gas sqrt(T) scaling referenced to the nearest grid
// boundary is used and a diagnostic is logged
// (ErrOutOfRangeExtrapolation is not returned — the condition is
// recovered locally per the property-provider contract).
func VaporConductivity(T, P float64) float64 {
	value, tOut, pOut := vaporConductivityTable.at(T, P)
	if !tOut && !pOut {
		return value
	}
	tMin, tMax := vaporConductivityTable.ts[0], vaporConductivityTable.ts[len(vaporConductivityTable.ts)-1]
	tRef := clamp(T, tMin, tMax)
	if tOut {
		Logger.WithFields(logrus.Fields{
			"T": T, "Tmin": tMin, "Tmax": tMax,
		}).Warn("fluid: vapor conductivity temperature out of range, using sqrt(T) extrapolation")
	}
	if pOut {
		pMin, pMax := vaporConductivityTable.ps[0], vaporConductivityTable.ps[len(vaporConductivityTable.ps)-1]
		Logger.WithFields(logrus.Fields{
			"P": P, "Pmin": pMin, "Pmax": pMax,
		}).Warn("fluid: vapor conductivity pressure out of range, using constant-pressure approximation")
	}
	return value * math.Sqrt(T/tRef)
}

// FrictionFactor returns the Darcy friction factor via the Gnielinski
// correlation for Reynolds number Re. Re must be positive.
func FrictionFactor(Re float64) (float64, error) {
	if Re <= 0 {
		return 0, invalidArg("FrictionFactor", "Re", Re)
	}
	t := 0.79*math.Log(Re) - 1.64
	return 1.0 / (t * t), nil
}

// NusseltNumber returns the Gnielinski-correlation Nusselt number for
// Reynolds number Re and Prandtl number Pr. Flows with Re below 1000
// are treated as laminar with the constant fully-developed-pipe value.
func NusseltNumber(Re, Pr float64) (float64, error) {
	if Re <= 0 || Pr <= 0 {
		return 0, invalidArg("NusseltNumber", "Re,Pr", math.Min(Re, Pr))
	}
	if Re < 1000 {
		return 4.36, nil
	}
	f, err := FrictionFactor(Re)
	if err != nil {
		return 0, err
	}
	fOver8 := f / 8.0
	num := fOver8 * (Re - 1000.0) * Pr
	den := 1.0 + 12.7*math.Sqrt(fOver8)*(math.Cbrt(Pr*Pr)-1.0)
	return num / den, nil
}

// ConvectiveCoefficient returns the Gnielinski-correlation convective
// heat-transfer coefficient [W/(m^2*K)] for Reynolds number Re, Prandtl
// number Pr, conductivity k [W/(m*K)], and hydraulic diameter Dh [m].
func ConvectiveCoefficient(Re, Pr, k, Dh float64) (float64, error) {
	if k <= 0 || Dh <= 0 {
		return 0, invalidArg("ConvectiveCoefficient", "k,Dh", math.Min(k, Dh))
	}
	Nu, err := NusseltNumber(Re, Pr)
	if err != nil {
		return 0, err
	}
	return Nu * k / Dh, nil
}
