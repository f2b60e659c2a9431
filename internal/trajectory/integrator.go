// Package trajectory advances a projectile through time under the force
// model until it impacts the ground or times out.
package trajectory

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Potatov1/potato-cannon-sim/internal/forces"
	"github.com/Potatov1/potato-cannon-sim/internal/geom"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/metrics"
)

// ErrNumericalInstability indicates a non-finite intermediate value during
// integration. Not retried; it signals a modeling or input error, not a
// transient condition.
var ErrNumericalInstability = errors.New("trajectory: numerical instability (non-finite state)")

// Config holds integrator tuning.
type Config struct {
	// Step is the fixed RK4 time step in seconds. Default 1 ms.
	Step float64
	// MaxFlightTime bounds the simulated flight; exceeding it terminates
	// the run with Timeout. Default 300 s.
	MaxFlightTime float64
	// SampleStride records every Nth step into the sample sequence.
	// The launch and terminal states are always recorded. Default 10.
	SampleStride int
}

const (
	defaultStep          = 0.001
	defaultMaxFlightTime = 300.0
	defaultSampleStride  = 10
)

func (c Config) withDefaults() Config {
	if c.Step <= 0 {
		c.Step = defaultStep
	}
	if c.MaxFlightTime <= 0 {
		c.MaxFlightTime = defaultMaxFlightTime
	}
	if c.SampleStride <= 0 {
		c.SampleStride = defaultSampleStride
	}
	return c
}

// Integrator runs fixed-step 4th-order Runge-Kutta integration of the
// state derivative [velocity, acceleration]. It holds no per-run state and
// is safe for concurrent use; each Integrate call is pure with respect to
// its inputs.
type Integrator struct {
	cfg Config
}

// New creates an integrator, applying defaults for zero-valued fields.
func New(cfg Config) *Integrator {
	return &Integrator{cfg: cfg.withDefaults()}
}

// derivative is the RK4 stage evaluation: d(position)/dt = velocity,
// d(velocity)/dt = acceleration from the force model.
func derivative(s ProjectileState, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions) (geom.Vector, geom.Vector) {
	return s.Velocity, forces.Acceleration(s.Velocity, s.Position.Z, cfg, env)
}

// Integrate launches the projectile at the given elevation angle and
// muzzle velocity and advances it until Impact or Timeout. The exact
// impact point is found by linear interpolation between the last state
// above ground and the first below, never the raw last sample.
//
// Validation errors (ErrInvalidConfiguration, ErrOutOfRangeEnvironment)
// are raised at entry before any stepping; ErrNumericalInstability is
// raised from the stepping loop.
func (it *Integrator) Integrate(cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, angleDeg, muzzleVelocity float64) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if muzzleVelocity < 0 || math.IsNaN(muzzleVelocity) || math.IsInf(muzzleVelocity, 0) {
		return nil, fmt.Errorf("%w: muzzle velocity must be a finite value ≥ 0, got %g",
			launcher.ErrInvalidConfiguration, muzzleVelocity)
	}

	start := time.Now()
	res, err := it.run(cfg, env, angleDeg, muzzleVelocity)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		metrics.RecordIntegration(metrics.OutcomeError, 0, elapsed)
	case res.Status == Timeout:
		metrics.RecordIntegration(metrics.OutcomeTimeout, res.Steps, elapsed)
	default:
		metrics.RecordIntegration(metrics.OutcomeImpact, res.Steps, elapsed)
	}
	return res, err
}

func (it *Integrator) run(cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, angleDeg, muzzleVelocity float64) (*Result, error) {
	dt := it.cfg.Step
	theta := angleDeg * math.Pi / 180.0

	state := ProjectileState{
		Position: geom.Vector{Z: env.LaunchHeight},
		Velocity: geom.Vector{
			X: muzzleVelocity * math.Cos(theta),
			Z: muzzleVelocity * math.Sin(theta),
		},
	}

	samples := []Sample{{Time: state.Time, Position: state.Position, Velocity: state.Velocity}}
	steps := 0

	for {
		if state.Time >= it.cfg.MaxFlightTime {
			if samples[len(samples)-1].Time != state.Time {
				samples = append(samples, Sample{state.Time, state.Position, state.Velocity})
			}
			return &Result{
				Status:   Timeout,
				Terminal: state,
				Samples:  samples,
				Steps:    steps,
			}, nil
		}

		next, err := rk4Step(state, dt, cfg, env)
		if err != nil {
			return nil, fmt.Errorf("%w: at t=%.4f s after %d steps", ErrNumericalInstability, state.Time, steps)
		}
		steps++

		if next.Position.Z <= 0 && state.Position.Z > 0 {
			terminal := interpolateImpact(state, next)
			return &Result{
				Status:   Impact,
				Terminal: terminal,
				Samples:  append(samples, Sample{terminal.Time, terminal.Position, terminal.Velocity}),
				Steps:    steps,
			}, nil
		}

		// Degenerate case: launched at or below ground with no upward
		// motion. Terminate immediately rather than tunneling.
		if next.Position.Z <= 0 && state.Position.Z <= 0 {
			return &Result{
				Status:   Impact,
				Terminal: next,
				Samples:  append(samples, Sample{next.Time, next.Position, next.Velocity}),
				Steps:    steps,
			}, nil
		}

		state = next
		if steps%it.cfg.SampleStride == 0 {
			samples = append(samples, Sample{state.Time, state.Position, state.Velocity})
		}
	}
}

// rk4Step advances the state by one fixed step of classical RK4.
func rk4Step(s ProjectileState, dt float64, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions) (ProjectileState, error) {
	k1p, k1v := derivative(s, cfg, env)
	k2p, k2v := derivative(offset(s, k1p, k1v, dt/2), cfg, env)
	k3p, k3v := derivative(offset(s, k2p, k2v, dt/2), cfg, env)
	k4p, k4v := derivative(offset(s, k3p, k3v, dt), cfg, env)

	next := ProjectileState{
		Time: s.Time + dt,
		Position: s.Position.Add(
			k1p.Add(k2p.Scale(2)).Add(k3p.Scale(2)).Add(k4p).Scale(dt / 6)),
		Velocity: s.Velocity.Add(
			k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(dt / 6)),
	}

	if !next.Position.IsFinite() || !next.Velocity.IsFinite() {
		return ProjectileState{}, ErrNumericalInstability
	}
	return next, nil
}

func offset(s ProjectileState, dpos, dvel geom.Vector, h float64) ProjectileState {
	return ProjectileState{
		Time:     s.Time + h,
		Position: s.Position.Add(dpos.Scale(h)),
		Velocity: s.Velocity.Add(dvel.Scale(h)),
	}
}

// interpolateImpact finds the ground crossing between the last state above
// ground and the first at or below it.
func interpolateImpact(above, below ProjectileState) ProjectileState {
	dz := above.Position.Z - below.Position.Z
	if dz <= 0 {
		return below
	}
	f := above.Position.Z / dz
	impact := ProjectileState{
		Time:     above.Time + f*(below.Time-above.Time),
		Position: above.Position.Lerp(below.Position, f),
		Velocity: above.Velocity.Lerp(below.Velocity, f),
	}
	// Pin altitude exactly to the ground plane; the lerp leaves only
	// floating-point dust here.
	impact.Position.Z = 0
	return impact
}
