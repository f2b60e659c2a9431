package launcher

import (
	"fmt"
	"math"
)

// EnvironmentConditions describes the launch site and ambient conditions.
// Immutable per simulation call.
type EnvironmentConditions struct {
	// WindSpeed in m/s, ≥ 0. WindBearingDeg is the compass bearing the wind
	// blows toward (0 = north, 90 = east), so a bearing equal to AzimuthDeg
	// is a tailwind.
	WindSpeed      float64
	WindBearingDeg float64

	// Altitude of the launch site above sea level, in [0, MaxSiteAltitude] m.
	Altitude float64

	// Temperature in °C at the site; honored only when TemperatureSet,
	// otherwise a standard-lapse default is derived from Altitude.
	Temperature    float64
	TemperatureSet bool

	// Pressure in Pa at the site; honored only when PressureSet, otherwise
	// derived barometrically from Altitude.
	Pressure    float64
	PressureSet bool

	LatitudeDeg float64 // [-90, 90]
	AzimuthDeg  float64 // azimuth of fire, 0 = north, clockwise

	// LaunchHeight is the muzzle height above local ground in meters.
	LaunchHeight float64
}

// AmbientTemperature returns the site temperature in °C, substituting the
// standard-lapse value for the site altitude when none was supplied.
func (e EnvironmentConditions) AmbientTemperature() float64 {
	if e.TemperatureSet {
		return e.Temperature
	}
	return standardLapseTemperature(e.Altitude)
}

// Validate checks the environment against the supported operating range.
func (e EnvironmentConditions) Validate() error {
	switch {
	case e.Altitude < 0 || e.Altitude > MaxSiteAltitude:
		return fmt.Errorf("%w: altitude %g m outside [0, %g]", ErrOutOfRangeEnvironment, e.Altitude, MaxSiteAltitude)
	case e.LatitudeDeg < -90 || e.LatitudeDeg > 90:
		return fmt.Errorf("%w: latitude %g° outside [-90, 90]", ErrOutOfRangeEnvironment, e.LatitudeDeg)
	case e.WindSpeed < 0 || math.IsNaN(e.WindSpeed):
		return fmt.Errorf("%w: wind speed must be ≥ 0, got %g", ErrOutOfRangeEnvironment, e.WindSpeed)
	case e.LaunchHeight < 0:
		return fmt.Errorf("%w: launch height must be ≥ 0, got %g", ErrOutOfRangeEnvironment, e.LaunchHeight)
	case e.PressureSet && !(e.Pressure > 0):
		return fmt.Errorf("%w: pressure must be positive, got %g", ErrOutOfRangeEnvironment, e.Pressure)
	case e.TemperatureSet && (e.Temperature < -100 || e.Temperature > 100):
		return fmt.Errorf("%w: temperature %g°C outside [-100, 100]", ErrOutOfRangeEnvironment, e.Temperature)
	}
	return nil
}

// standardLapseTemperature is the ISA-style sea-level 15°C minus the
// tropospheric lapse of 6.5°C per km.
func standardLapseTemperature(altitude float64) float64 {
	return 15.0 - 0.0065*altitude
}
