// Package launcher holds the launcher and environment records that the
// profile edge hands to the simulation core, along with their validation.
// Both records are immutable for the duration of a simulation call; the
// core validates them itself and does not trust the caller to have done so.
package launcher

import (
	"fmt"
	"math"
)

// StandardGravity is the default gravitational acceleration in m/s².
const StandardGravity = 9.80665

// MaxSiteAltitude is the upper bound of the supported operating range in
// meters above sea level. The barometric density approximation is not
// validated beyond this.
const MaxSiteAltitude = 5000.0

// LauncherConfig describes the physical cannon and its projectile.
// All dimensions are SI: meters, kilograms, cubic meters, J/m³.
type LauncherConfig struct {
	BarrelLength float64 // m
	BoreDiameter float64 // m

	// Chamber geometry. ChamberVolume wins when set; otherwise the volume
	// is derived from ChamberLength and ChamberDiameter as a cylinder.
	ChamberVolume   float64 // m³
	ChamberLength   float64 // m
	ChamberDiameter float64 // m

	ProjectileMass  float64 // kg
	DragCoefficient float64 // dimensionless, ≥ 0

	// Fuel identifies an entry in the fuel energy table. FuelEnergyDensity,
	// when positive, overrides the table (user-defined fuel) in J/m³.
	Fuel              string
	FuelEnergyDensity float64

	// Efficiency is the fraction of combustion energy converted to
	// projectile kinetic energy, in (0, 1].
	Efficiency float64

	// Gravity overrides the gravitational acceleration when positive.
	// Zero means StandardGravity.
	Gravity float64
}

// CrossSection returns the projectile's cross-sectional area derived from
// the bore diameter.
func (c LauncherConfig) CrossSection() float64 {
	r := c.BoreDiameter / 2
	return math.Pi * r * r
}

// BarrelVolume returns the swept volume of the barrel.
func (c LauncherConfig) BarrelVolume() float64 {
	return cylinderVolume(c.BarrelLength, c.BoreDiameter)
}

// EffectiveChamberVolume returns the combustion chamber volume, either the
// explicit value or the cylinder derived from chamber length and diameter.
func (c LauncherConfig) EffectiveChamberVolume() float64 {
	if c.ChamberVolume > 0 {
		return c.ChamberVolume
	}
	return cylinderVolume(c.ChamberLength, c.ChamberDiameter)
}

// GravityMagnitude returns the configured gravity, or StandardGravity when
// unset.
func (c LauncherConfig) GravityMagnitude() float64 {
	if c.Gravity > 0 {
		return c.Gravity
	}
	return StandardGravity
}

// Validate checks the structural invariants of the config. Fuel table
// membership is checked separately by the muzzle-velocity estimator, which
// owns the fuel table.
func (c LauncherConfig) Validate() error {
	switch {
	case !(c.ProjectileMass > 0):
		return fmt.Errorf("%w: projectile mass must be positive, got %g", ErrInvalidConfiguration, c.ProjectileMass)
	case !(c.BarrelLength > 0):
		return fmt.Errorf("%w: barrel length must be positive, got %g", ErrInvalidConfiguration, c.BarrelLength)
	case !(c.BoreDiameter > 0):
		return fmt.Errorf("%w: bore diameter must be positive, got %g", ErrInvalidConfiguration, c.BoreDiameter)
	case c.DragCoefficient < 0 || math.IsNaN(c.DragCoefficient):
		return fmt.Errorf("%w: drag coefficient must be ≥ 0, got %g", ErrInvalidConfiguration, c.DragCoefficient)
	case !(c.Efficiency > 0) || c.Efficiency > 1:
		return fmt.Errorf("%w: efficiency must be in (0,1], got %g", ErrInvalidConfiguration, c.Efficiency)
	case c.EffectiveChamberVolume() <= 0:
		return fmt.Errorf("%w: chamber volume must be positive", ErrInvalidConfiguration)
	case c.FuelEnergyDensity < 0:
		return fmt.Errorf("%w: fuel energy density must be ≥ 0, got %g", ErrInvalidConfiguration, c.FuelEnergyDensity)
	}
	return nil
}

func cylinderVolume(length, diameter float64) float64 {
	r := diameter / 2
	return math.Pi * r * r * length
}
