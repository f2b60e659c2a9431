// Package geom provides the small amount of 3D vector algebra needed for
// trajectory calculation. All trajectory code works in the shot frame:
// X downrange along the azimuth of fire, Y cross-range (positive to the
// left of the line of fire), Z up.
package geom

import (
	"fmt"
	"math"
)

// Vector is a 3D vector in the shot frame.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) String() string {
	return fmt.Sprintf("[X=%f,Y=%f,Z=%f]", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vector) Add(b Vector) Vector {
	return Vector{v.X + b.X, v.Y + b.Y, v.Z + b.Z}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(b Vector) Vector {
	return Vector{v.X - b.X, v.Y - b.Y, v.Z - b.Z}
}

// Scale multiplies the vector by a constant.
func (v Vector) Scale(a float64) Vector {
	return Vector{a * v.X, a * v.Y, a * v.Z}
}

// Dot returns the scalar product of two vectors.
func (v Vector) Dot(b Vector) float64 {
	return v.X*b.X + v.Y*b.Y + v.Z*b.Z
}

// Cross returns the vector product of two vectors.
func (v Vector) Cross(b Vector) Vector {
	return Vector{
		v.Y*b.Z - v.Z*b.Y,
		v.Z*b.X - v.X*b.Z,
		v.X*b.Y - v.Y*b.X,
	}
}

// Magnitude returns the Euclidean length of the vector.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Horizontal returns the length of the vector's projection onto the
// ground plane.
func (v Vector) Horizontal() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsFinite reports whether every component is a finite number.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Lerp linearly interpolates between v and b. t=0 yields v, t=1 yields b.
func (v Vector) Lerp(b Vector, t float64) Vector {
	return v.Add(b.Sub(v).Scale(t))
}
