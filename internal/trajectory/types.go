package trajectory

import "github.com/Potatov1/potato-cannon-sim/internal/geom"

// ProjectileState is the projectile's kinematic state at one instant.
// Position is in the shot frame: X downrange, Y cross-range (positive
// left of the line of fire), Z altitude above local ground.
type ProjectileState struct {
	Time     float64 // s since launch
	Position geom.Vector
	Velocity geom.Vector
}

// Phase classifies a state as ascending or descending. Informational only;
// the integrator never branches on it.
type Phase int

const (
	Ascending Phase = iota
	Descending
)

func (p Phase) String() string {
	if p == Ascending {
		return "ascending"
	}
	return "descending"
}

// Phase reports whether the projectile is ascending or descending.
func (s ProjectileState) Phase() Phase {
	if s.Velocity.Z >= 0 {
		return Ascending
	}
	return Descending
}

// Status is the terminal condition of an integration run.
type Status int

const (
	// Impact means altitude crossed zero from above; the terminal state is
	// interpolated to the exact crossing.
	Impact Status = iota
	// Timeout means elapsed time exceeded the configured maximum without
	// the projectile returning to ground.
	Timeout
)

func (s Status) String() string {
	if s == Impact {
		return "impact"
	}
	return "timeout"
}

// Sample is one point of the recorded flight, in flight order, suitable
// for direct plotting without further transformation.
type Sample struct {
	Time     float64
	Position geom.Vector
	Velocity geom.Vector
}

// Result is the outcome of one integration run: the terminal state plus
// the full finite sample sequence. Read-only to consumers; rerunning the
// integrator with the same inputs reproduces it exactly.
type Result struct {
	Status   Status
	Terminal ProjectileState
	Samples  []Sample
	Steps    int // RK4 steps taken
}

// Range returns the horizontal distance from the launch point to the
// terminal position.
func (r *Result) Range() float64 {
	return r.Terminal.Position.Horizontal()
}

// TimeOfFlight returns the elapsed time at the terminal state.
func (r *Result) TimeOfFlight() float64 {
	return r.Terminal.Time
}

// ImpactSpeed returns the speed at the terminal state.
func (r *Result) ImpactSpeed() float64 {
	return r.Terminal.Velocity.Magnitude()
}

// Drift returns the cross-range deflection at the terminal state,
// positive to the left of the line of fire.
func (r *Result) Drift() float64 {
	return r.Terminal.Position.Y
}
