package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Potatov1/potato-cannon-sim/internal/firing"
	"github.com/Potatov1/potato-cannon-sim/internal/geom"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

func TestRangeCurvePNG(t *testing.T) {
	points := []firing.CurvePoint{
		{AngleDeg: 15, Range: 120},
		{AngleDeg: 30, Range: 200},
		{AngleDeg: 45, Range: 230},
		{AngleDeg: 60, Range: 190},
		{AngleDeg: 75, Range: 110},
	}

	path := filepath.Join(t.TempDir(), "curve.png")
	if err := RangeCurvePNG(points, path); err != nil {
		t.Fatalf("RangeCurvePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output PNG is empty")
	}
}

func TestTrajectoryProfilePNG(t *testing.T) {
	samples := []trajectory.Sample{
		{Time: 0, Position: geom.Vector{Z: 1}},
		{Time: 1, Position: geom.Vector{X: 30, Z: 20}},
		{Time: 2, Position: geom.Vector{X: 60, Z: 28}},
		{Time: 3, Position: geom.Vector{X: 90, Z: 20}},
		{Time: 4, Position: geom.Vector{X: 118, Z: 0}},
	}

	path := filepath.Join(t.TempDir(), "profile.png")
	if err := TrajectoryProfilePNG(samples, path); err != nil {
		t.Fatalf("TrajectoryProfilePNG failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("output missing or empty: %v", err)
	}
}

func TestEmptyInputRejected(t *testing.T) {
	if err := RangeCurvePNG(nil, "x.png"); err == nil {
		t.Error("RangeCurvePNG accepted empty input")
	}
	if err := TrajectoryProfilePNG(nil, "x.png"); err == nil {
		t.Error("TrajectoryProfilePNG accepted empty input")
	}
}
