// Package atmos derives air density from altitude using the standard
// barometric approximation. Valid over the system's declared operating
// range of [0, 5000] m above sea level.
package atmos

import (
	"fmt"
	"math"

	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
)

const (
	seaLevelPressure  = 101325.0 // Pa
	dryAirGasConstant = 287.05   // J/(kg·K)

	// Barometric formula coefficients for the troposphere.
	pressureLapseCoeff = 2.25577e-5
	pressureExponent   = 5.25588
)

// Pressure returns the barometric ambient pressure in Pa at the given
// altitude above sea level.
func Pressure(altitude float64) float64 {
	return seaLevelPressure * math.Pow(1-pressureLapseCoeff*altitude, pressureExponent)
}

// DensityAt returns the air density in kg/m³ at the given altitude above
// sea level and ambient temperature in °C, via the ideal-gas relation
// rho = p / (R·T). It is a pure, total function with no bound checking;
// callers validate the site altitude once at entry via Density or
// EnvironmentConditions.Validate.
func DensityAt(altitude, temperatureC float64) float64 {
	t := temperatureC + 273.15
	return Pressure(altitude) / (dryAirGasConstant * t)
}

// Density returns the air density at the given altitude above sea level,
// deriving the temperature from the standard lapse. Fails with
// ErrOutOfRangeEnvironment when the altitude is outside the supported
// [0, MaxSiteAltitude] bound. This check happens once per call, not per
// integration step.
func Density(altitude, temperatureC float64) (float64, error) {
	if altitude < 0 || altitude > launcher.MaxSiteAltitude {
		return 0, fmt.Errorf("%w: altitude %g m outside [0, %g]",
			launcher.ErrOutOfRangeEnvironment, altitude, launcher.MaxSiteAltitude)
	}
	return DensityAt(altitude, temperatureC), nil
}

// FlightDensity returns the air density at the given height above the
// launch site described by env, honoring explicit temperature and pressure
// overrides. An explicit pressure re-anchors the barometric column at the
// site; the density aloft follows the same barometric profile from that
// anchor. Pure and total; the site altitude was validated once at entry.
func FlightDensity(env launcher.EnvironmentConditions, heightAboveGround float64) float64 {
	t := env.AmbientTemperature() + 273.15
	p := Pressure(env.Altitude + heightAboveGround)
	if env.PressureSet {
		p *= env.Pressure / Pressure(env.Altitude)
	}
	return p / (dryAirGasConstant * t)
}

// SiteDensity returns the air density at the launch site described by env,
// honoring explicit temperature/pressure overrides and validating the
// environment first.
func SiteDensity(env launcher.EnvironmentConditions) (float64, error) {
	if err := env.Validate(); err != nil {
		return 0, err
	}
	return FlightDensity(env, 0), nil
}
