package firing

import (
	"context"
	"math"
	"testing"

	"github.com/Potatov1/potato-cannon-sim/internal/geom"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

// Vacuum at v0 = 50 m/s, g = 9.81: range ceiling ≈ 254.8 m at 45°.

func TestSolveForRangeConverges(t *testing.T) {
	gen := testGenerator(1)
	env := launcher.EnvironmentConditions{}

	sol, err := gen.SolveForRange(context.Background(), vacuumConfig(), env, 50, SolveParams{
		TargetRange: 200,
		Tolerance:   1.0,
	})
	if err != nil {
		t.Fatalf("SolveForRange failed: %v", err)
	}
	if sol.Status != Found {
		t.Fatalf("status = %v, want found", sol.Status)
	}
	if resid := math.Abs(sol.Range - 200); resid > 1.0 {
		t.Errorf("residual %.3f m exceeds tolerance", resid)
	}

	// Ascending branch: the solution sits below the range-maximizing angle.
	if sol.AngleDeg >= 46 {
		t.Errorf("ascending-branch angle = %.2f°, want below ~45°", sol.AngleDeg)
	}

	// Closed form: sin(2θ) = R·g/v0² gives θ ≈ 25.8° on the low branch.
	wantAngle := math.Asin(200*9.81/(50*50)) / 2 * 180 / math.Pi
	if math.Abs(sol.AngleDeg-wantAngle) > 1 {
		t.Errorf("angle = %.2f°, closed form %.2f°", sol.AngleDeg, wantAngle)
	}
}

func TestSolveDescendingBranch(t *testing.T) {
	gen := testGenerator(1)
	env := launcher.EnvironmentConditions{}

	sol, err := gen.SolveForRange(context.Background(), vacuumConfig(), env, 50, SolveParams{
		TargetRange:      200,
		Tolerance:        1.0,
		DescendingBranch: true,
	})
	if err != nil {
		t.Fatalf("SolveForRange failed: %v", err)
	}
	if sol.Status != Found {
		t.Fatalf("status = %v, want found", sol.Status)
	}
	if sol.AngleDeg <= 44 {
		t.Errorf("descending-branch angle = %.2f°, want above ~45°", sol.AngleDeg)
	}
	if resid := math.Abs(sol.Range - 200); resid > 1.0 {
		t.Errorf("residual %.3f m exceeds tolerance", resid)
	}
}

func TestSolveUnreachableTarget(t *testing.T) {
	gen := testGenerator(1)
	env := launcher.EnvironmentConditions{}

	// 300 m exceeds the ~254.8 m vacuum ceiling at 50 m/s.
	sol, err := gen.SolveForRange(context.Background(), vacuumConfig(), env, 50, SolveParams{
		TargetRange: 300,
		Tolerance:   1.0,
	})
	if err != nil {
		t.Fatalf("SolveForRange failed: %v", err)
	}
	if sol.Status != NoSolution {
		t.Fatalf("status = %v, want no-solution", sol.Status)
	}
	// The report carries the ceiling for "target unreachable" messages.
	if sol.Range < 250 || sol.Range > 260 {
		t.Errorf("reported ceiling %.1f m, want ≈ 254.8", sol.Range)
	}
	if math.Abs(sol.AngleDeg-45) > 1 {
		t.Errorf("reported apex %.2f°, want ≈ 45°", sol.AngleDeg)
	}
}

func TestSolveWithDrag(t *testing.T) {
	gen := testGenerator(1)
	env := launcher.EnvironmentConditions{}
	cfg := draggyConfig(0.47)

	sol, err := gen.SolveForRange(context.Background(), cfg, env, 70, SolveParams{
		TargetRange: 100,
		Tolerance:   0.5,
	})
	if err != nil {
		t.Fatalf("SolveForRange failed: %v", err)
	}
	if sol.Status != Found {
		t.Fatalf("status = %v, want found", sol.Status)
	}
	if resid := math.Abs(sol.Range - 100); resid > 0.5 {
		t.Errorf("residual %.3f m exceeds tolerance", resid)
	}
}

func TestSolveInvalidParams(t *testing.T) {
	gen := testGenerator(1)
	env := launcher.EnvironmentConditions{}

	cases := []SolveParams{
		{TargetRange: 0},
		{TargetRange: -5},
		{TargetRange: 100, MinAngle: 50, MaxAngle: 40},
		{TargetRange: 100, MinAngle: -10},
		{TargetRange: 100, MaxAngle: 120},
	}
	for i, p := range cases {
		if _, err := gen.SolveForRange(context.Background(), vacuumConfig(), env, 50, p); err == nil {
			t.Errorf("case %d: expected parameter error, got nil", i)
		}
	}
}

func TestSolveCancellation(t *testing.T) {
	gen := testGenerator(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.SolveForRange(ctx, vacuumConfig(), launcher.EnvironmentConditions{}, 50, SolveParams{
		TargetRange: 200,
	})
	if err == nil {
		t.Fatal("expected error from cancelled solve")
	}
}

// TestBisectCollapsedBracket drives the bisection against a discontinuous
// range relation that jumps over the target, so no angle ever meets the
// tolerance. The collapsed bracket must report no-solution well before the
// iteration cap instead of claiming convergence.
func TestBisectCollapsedBracket(t *testing.T) {
	gen := testGenerator(1)

	rangeAt := func(angle float64) (*trajectory.Result, error) {
		r := 100.0
		if angle >= 30 {
			r = 200.0
		}
		return &trajectory.Result{
			Status:   trajectory.Impact,
			Terminal: trajectory.ProjectileState{Position: geom.Vector{X: r}},
		}, nil
	}

	p := SolveParams{TargetRange: 150}.withDefaults()
	sol, iterations, err := gen.bisect(rangeAt, 10, 50, 60, p)
	if err != nil {
		t.Fatalf("bisect failed: %v", err)
	}
	if sol.Status != NoSolution {
		t.Errorf("status = %v, want no-solution: residual is 50 m at every angle", sol.Status)
	}
	if iterations >= p.MaxIterations {
		t.Errorf("took %d iterations; bracket collapse should stop well before the cap", iterations)
	}
}
