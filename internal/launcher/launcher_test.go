package launcher

import (
	"errors"
	"math"
	"testing"
)

func validConfig() LauncherConfig {
	return LauncherConfig{
		BarrelLength:    1.5,
		BoreDiameter:    0.075,
		ChamberLength:   0.5,
		ChamberDiameter: 0.11,
		ProjectileMass:  0.25,
		DragCoefficient: 0.47,
		Fuel:            "propane",
		Efficiency:      0.15,
	}
}

func TestLauncherConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LauncherConfig)
		wantOK bool
	}{
		{"valid", func(c *LauncherConfig) {}, true},
		{"zero mass", func(c *LauncherConfig) { c.ProjectileMass = 0 }, false},
		{"negative mass", func(c *LauncherConfig) { c.ProjectileMass = -1 }, false},
		{"zero barrel", func(c *LauncherConfig) { c.BarrelLength = 0 }, false},
		{"zero bore", func(c *LauncherConfig) { c.BoreDiameter = 0 }, false},
		{"negative drag", func(c *LauncherConfig) { c.DragCoefficient = -0.1 }, false},
		{"zero drag ok", func(c *LauncherConfig) { c.DragCoefficient = 0 }, true},
		{"zero efficiency", func(c *LauncherConfig) { c.Efficiency = 0 }, false},
		{"efficiency above one", func(c *LauncherConfig) { c.Efficiency = 1.5 }, false},
		{"efficiency exactly one ok", func(c *LauncherConfig) { c.Efficiency = 1 }, true},
		{"no chamber geometry", func(c *LauncherConfig) {
			c.ChamberLength, c.ChamberDiameter, c.ChamberVolume = 0, 0, 0
		}, false},
		{"explicit chamber volume ok", func(c *LauncherConfig) {
			c.ChamberLength, c.ChamberDiameter = 0, 0
			c.ChamberVolume = 0.004
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("error %v is not ErrInvalidConfiguration", err)
				}
			}
		})
	}
}

func TestEnvironmentValidate(t *testing.T) {
	tests := []struct {
		name   string
		env    EnvironmentConditions
		wantOK bool
	}{
		{"zero value ok", EnvironmentConditions{}, true},
		{"max altitude ok", EnvironmentConditions{Altitude: 5000}, true},
		{"altitude too high", EnvironmentConditions{Altitude: 6000}, false},
		{"negative altitude", EnvironmentConditions{Altitude: -1}, false},
		{"latitude too high", EnvironmentConditions{LatitudeDeg: 95}, false},
		{"latitude too low", EnvironmentConditions{LatitudeDeg: -95}, false},
		{"poles ok", EnvironmentConditions{LatitudeDeg: 90}, true},
		{"negative wind", EnvironmentConditions{WindSpeed: -1}, false},
		{"negative launch height", EnvironmentConditions{LaunchHeight: -0.5}, false},
		{"zero pressure when set", EnvironmentConditions{Pressure: 0, PressureSet: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrOutOfRangeEnvironment) {
					t.Errorf("error %v is not ErrOutOfRangeEnvironment", err)
				}
			}
		})
	}
}

func TestDerivedGeometry(t *testing.T) {
	cfg := validConfig()

	wantArea := math.Pi * 0.0375 * 0.0375
	if got := cfg.CrossSection(); math.Abs(got-wantArea) > 1e-12 {
		t.Errorf("CrossSection = %g, want %g", got, wantArea)
	}

	wantBarrel := math.Pi * 0.0375 * 0.0375 * 1.5
	if got := cfg.BarrelVolume(); math.Abs(got-wantBarrel) > 1e-12 {
		t.Errorf("BarrelVolume = %g, want %g", got, wantBarrel)
	}

	wantChamber := math.Pi * 0.055 * 0.055 * 0.5
	if got := cfg.EffectiveChamberVolume(); math.Abs(got-wantChamber) > 1e-12 {
		t.Errorf("EffectiveChamberVolume = %g, want %g", got, wantChamber)
	}

	// Explicit volume wins over geometry.
	cfg.ChamberVolume = 0.002
	if got := cfg.EffectiveChamberVolume(); got != 0.002 {
		t.Errorf("explicit chamber volume = %g, want 0.002", got)
	}
}

func TestAmbientTemperatureDefault(t *testing.T) {
	env := EnvironmentConditions{Altitude: 1000}
	want := 15.0 - 6.5
	if got := env.AmbientTemperature(); math.Abs(got-want) > 1e-9 {
		t.Errorf("AmbientTemperature at 1000 m = %g, want %g", got, want)
	}

	env.Temperature = 25
	env.TemperatureSet = true
	if got := env.AmbientTemperature(); got != 25 {
		t.Errorf("explicit temperature = %g, want 25", got)
	}
}

func TestGravityDefault(t *testing.T) {
	cfg := validConfig()
	if got := cfg.GravityMagnitude(); got != StandardGravity {
		t.Errorf("default gravity = %g, want %g", got, StandardGravity)
	}
	cfg.Gravity = 9.81
	if got := cfg.GravityMagnitude(); got != 9.81 {
		t.Errorf("override gravity = %g, want 9.81", got)
	}
}
