// Package forces composes gravity, quadratic drag against wind-relative
// velocity, and Coriolis acceleration into the net acceleration acting on
// the projectile. Everything here is a pure function of its arguments;
// the integrator calls Acceleration several times per simulated
// millisecond.
//
// Frame convention (see package geom): X downrange along the azimuth of
// fire, Y cross-range positive to the left of the line of fire, Z up.
package forces

import (
	"math"

	"github.com/Potatov1/potato-cannon-sim/internal/atmos"
	"github.com/Potatov1/potato-cannon-sim/internal/geom"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
)

// EarthRotationRate is Earth's sidereal rotation rate in rad/s.
const EarthRotationRate = 7.2921159e-5

const degToRad = math.Pi / 180.0

// WindVector resolves the environment's wind (speed + compass bearing the
// wind blows toward) into the shot frame.
func WindVector(env launcher.EnvironmentConditions) geom.Vector {
	if env.WindSpeed == 0 {
		return geom.Vector{}
	}
	// Bearing relative to the line of fire. A wind blowing along the
	// azimuth of fire is a pure tailwind (+X).
	rel := (env.WindBearingDeg - env.AzimuthDeg) * degToRad
	return geom.Vector{
		X: env.WindSpeed * math.Cos(rel),
		Y: -env.WindSpeed * math.Sin(rel),
	}
}

// EarthRotation returns Earth's rotation vector Ω expressed in the shot
// frame for the environment's latitude and azimuth of fire. The horizontal
// and vertical components follow the standard decomposition: in local ENU
// coordinates Ω = ω·(0, cos φ, sin φ), rotated so X lies along the azimuth.
func EarthRotation(env launcher.EnvironmentConditions) geom.Vector {
	lat := env.LatitudeDeg * degToRad
	az := env.AzimuthDeg * degToRad
	return geom.Vector{
		X: EarthRotationRate * math.Cos(lat) * math.Cos(az),
		Y: EarthRotationRate * math.Cos(lat) * math.Sin(az),
		Z: EarthRotationRate * math.Sin(lat),
	}
}

// Acceleration returns the net acceleration on the projectile for the given
// velocity and altitude above local ground. Gravity is constant downward;
// drag has magnitude ½·ρ·Cd·A·|v_rel|² opposite the wind-relative velocity;
// Coriolis is -2·Ω×v. The deflection sign falls out of the latitude term in
// Ω: it flips between hemispheres.
func Acceleration(vel geom.Vector, altitudeAboveGround float64, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions) geom.Vector {
	// Gravity.
	acc := geom.Vector{Z: -cfg.GravityMagnitude()}

	// Quadratic drag against the wind-relative velocity. Density is a pure
	// function of the projectile's current height above the site, honoring
	// the environment's pressure override; the site bound was validated
	// once at entry.
	if cfg.DragCoefficient > 0 {
		vRel := vel.Sub(WindVector(env))
		speed := vRel.Magnitude()
		if speed > 0 {
			rho := atmos.FlightDensity(env, altitudeAboveGround)
			k := 0.5 * rho * cfg.DragCoefficient * cfg.CrossSection() / cfg.ProjectileMass
			acc = acc.Add(vRel.Scale(-k * speed))
		}
	}

	// Coriolis.
	acc = acc.Add(EarthRotation(env).Cross(vel).Scale(-2))

	return acc
}
