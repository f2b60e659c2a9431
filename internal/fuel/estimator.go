package fuel

import (
	"fmt"
	"math"

	"github.com/Potatov1/potato-cannon-sim/internal/atmos"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
)

// EnergyModel converts combustion chemistry into the energy delivered to
// the projectile. The README behind this system gives no authoritative
// combustion model, so the conversion is a swappable strategy.
type EnergyModel interface {
	// DeliveredEnergy returns the kinetic energy in joules transferred to
	// the projectile for the given launcher and fuel energy density (J/m³).
	DeliveredEnergy(cfg launcher.LauncherConfig, energyDensity float64) float64
}

// DensityModel is the default strategy: chamber volume times volumetric
// energy density, scaled by the configured combustion efficiency.
type DensityModel struct{}

func (DensityModel) DeliveredEnergy(cfg launcher.LauncherConfig, energyDensity float64) float64 {
	chemical := cfg.EffectiveChamberVolume() * energyDensity
	return chemical * cfg.Efficiency
}

// AdiabaticModel is a first-order ideal-gas alternative: the combustion
// energy raises the chamber pressure, and the charge then expands
// adiabatically through the barrel volume doing work on the projectile.
// The efficiency factor absorbs heat loss, friction and blow-by.
type AdiabaticModel struct {
	// Gamma is the heat capacity ratio of the combustion gases.
	// Zero means 1.4 (diatomic air approximation).
	Gamma float64
}

func (m AdiabaticModel) DeliveredEnergy(cfg launcher.LauncherConfig, energyDensity float64) float64 {
	gamma := m.Gamma
	if gamma <= 1 {
		gamma = 1.4
	}

	vc := cfg.EffectiveChamberVolume()
	vb := cfg.BarrelVolume()
	chemical := vc * energyDensity

	// Peak chamber pressure above ambient from the combustion energy.
	p0 := chemical*(gamma-1)/vc + atmos.Pressure(0)

	// Adiabatic expansion work from Vc to Vc+Vb.
	work := p0 * vc / (gamma - 1) * (1 - math.Pow(vc/(vc+vb), gamma-1))
	return work * cfg.Efficiency
}

// EstimateMuzzleVelocity solves E = ½·m·v² for v, where E comes from the
// energy model applied to the fuel entry named by the config. A positive
// cfg.FuelEnergyDensity acts as a user-defined fuel and bypasses the table.
// One-shot closed form, not iterative; deterministic for identical inputs.
//
// Fails with ErrInvalidConfiguration when the config is malformed or the
// fuel identifier is unrecognized with no user density supplied.
func EstimateMuzzleVelocity(cfg launcher.LauncherConfig, table *Table, model EnergyModel) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if model == nil {
		model = DensityModel{}
	}

	density := cfg.FuelEnergyDensity
	if density <= 0 {
		d, ok := table.Lookup(cfg.Fuel)
		if !ok {
			return 0, fmt.Errorf("%w: unknown fuel %q and no user energy density supplied (known: %v)",
				launcher.ErrInvalidConfiguration, cfg.Fuel, table.Names())
		}
		density = d
	}

	energy := model.DeliveredEnergy(cfg, density)
	if !(energy > 0) || math.IsInf(energy, 0) {
		return 0, fmt.Errorf("%w: energy model produced non-positive energy %g J",
			launcher.ErrInvalidConfiguration, energy)
	}

	return math.Sqrt(2 * energy / cfg.ProjectileMass), nil
}
