package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVectorAlgebra(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, -5, 6}

	if got := a.Add(b); got != (Vector{5, -3, 9}) {
		t.Errorf("Add = %v, want [5 -3 9]", got)
	}
	if got := a.Sub(b); got != (Vector{-3, 7, -3}) {
		t.Errorf("Sub = %v, want [-3 7 -3]", got)
	}
	if got := a.Scale(2); got != (Vector{2, 4, 6}) {
		t.Errorf("Scale = %v, want [2 4 6]", got)
	}
	if got := a.Dot(b); got != 4-10+18 {
		t.Errorf("Dot = %v, want 12", got)
	}
}

func TestVectorCross(t *testing.T) {
	x := Vector{1, 0, 0}
	y := Vector{0, 1, 0}
	z := Vector{0, 0, 1}

	if got := x.Cross(y); got != z {
		t.Errorf("x × y = %v, want z", got)
	}
	if got := y.Cross(x); got != z.Scale(-1) {
		t.Errorf("y × x = %v, want -z", got)
	}
	// Cross product is perpendicular to both operands.
	a := Vector{1.5, -2.25, 0.75}
	b := Vector{-0.5, 3.0, 2.0}
	c := a.Cross(b)
	if !almostEqual(c.Dot(a), 0, 1e-12) || !almostEqual(c.Dot(b), 0, 1e-12) {
		t.Errorf("cross product not perpendicular: c·a=%g c·b=%g", c.Dot(a), c.Dot(b))
	}
}

func TestVectorMagnitude(t *testing.T) {
	v := Vector{3, 4, 12}
	if got := v.Magnitude(); !almostEqual(got, 13, 1e-12) {
		t.Errorf("Magnitude = %g, want 13", got)
	}
	if got := v.Horizontal(); !almostEqual(got, 5, 1e-12) {
		t.Errorf("Horizontal = %g, want 5", got)
	}
}

func TestVectorLerp(t *testing.T) {
	a := Vector{0, 0, 10}
	b := Vector{10, 2, -10}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if !almostEqual(mid.Z, 0, 1e-12) {
		t.Errorf("Lerp(0.5).Z = %g, want 0", mid.Z)
	}
}

func TestVectorIsFinite(t *testing.T) {
	if !(Vector{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vector{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if (Vector{0, math.Inf(1), 0}).IsFinite() {
		t.Error("Inf component reported finite")
	}
}
