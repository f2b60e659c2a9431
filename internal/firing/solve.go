package firing

import (
	"context"
	"fmt"
	"math"

	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/metrics"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

// SolveParams configures SolveForRange.
type SolveParams struct {
	// TargetRange is the requested impact range in meters.
	TargetRange float64
	// MinAngle and MaxAngle bound the search in degrees. Zero values mean
	// [0, 90].
	MinAngle, MaxAngle float64
	// Tolerance is the acceptable residual range error in meters.
	// Default 0.5 m.
	Tolerance float64
	// MaxIterations bounds the bisection. Default 60.
	MaxIterations int
	// DescendingBranch selects angles above the range-maximizing angle
	// instead of the default ascending branch below it.
	DescendingBranch bool
}

func (p SolveParams) withDefaults() SolveParams {
	if p.MaxAngle <= 0 {
		p.MaxAngle = 90
	}
	if p.Tolerance <= 0 {
		p.Tolerance = 0.5
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = 60
	}
	return p
}

// Coarse scan and golden-section settings for locating the
// range-maximizing angle.
const (
	maxRangeScanStep   = 2.5   // degrees between coarse scan points
	maxRangeAngleTol   = 0.05  // degrees; refinement stop width
	goldenRatioSection = 0.381966011250105 // 2 - φ
)

// bisectBracketMin is the bracket width in degrees below which further
// bisection cannot improve the residual. A bracket this narrow that still
// misses the range tolerance means the branch has no solution at the
// requested precision.
const bisectBracketMin = 1e-3

// SolveForRange finds an elevation angle whose impact range matches the
// target within tolerance, using bisection over the range-vs-angle
// relation. The relation is monotonic on either side of the
// range-maximizing angle, so the search bracket is first restricted to
// the requested branch. Iterations are sequential by nature; each step
// depends on the previous bracket.
//
// A non-converging search is a reported outcome (Status NoSolution), not
// an error; hard failures (validation, instability, cancellation) are
// errors.
func (g *Generator) SolveForRange(ctx context.Context, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, muzzleVelocity float64, p SolveParams) (Solution, error) {
	p = p.withDefaults()
	if p.MinAngle < 0 || p.MaxAngle > 90 || p.MinAngle >= p.MaxAngle {
		return Solution{}, fmt.Errorf("%w: angle bounds [%g, %g] must satisfy 0 ≤ min < max ≤ 90",
			launcher.ErrInvalidConfiguration, p.MinAngle, p.MaxAngle)
	}
	if !(p.TargetRange > 0) {
		return Solution{}, fmt.Errorf("%w: target range must be positive, got %g",
			launcher.ErrInvalidConfiguration, p.TargetRange)
	}

	rangeAt := func(angle float64) (*trajectory.Result, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return g.integrator.Integrate(cfg, env, angle, muzzleVelocity)
	}

	// Locate the range-maximizing angle inside the bounds so the bracket
	// can be restricted to one monotonic branch.
	apex, apexRange, err := g.maxRangeAngle(rangeAt, p.MinAngle, p.MaxAngle)
	if err != nil {
		return Solution{}, err
	}

	if p.TargetRange > apexRange+p.Tolerance {
		// Target beyond the range ceiling: unreachable at this muzzle
		// velocity. Reported, not an error.
		metrics.RecordSolve(0, false)
		g.logger.Debug("target range unreachable",
			"target_m", p.TargetRange,
			"ceiling_m", apexRange,
			"apex_deg", apex,
		)
		return Solution{
			AngleDeg:       apex,
			MuzzleVelocity: muzzleVelocity,
			Range:          apexRange,
			Status:         NoSolution,
		}, nil
	}

	lo, hi := p.MinAngle, apex
	if p.DescendingBranch {
		lo, hi = apex, p.MaxAngle
	}

	sol, iterations, err := g.bisect(rangeAt, lo, hi, muzzleVelocity, p)
	if err != nil {
		return Solution{}, err
	}
	metrics.RecordSolve(iterations, sol.Status == Found)
	g.logger.Debug("solve complete",
		"status", sol.Status.String(),
		"angle_deg", sol.AngleDeg,
		"range_m", sol.Range,
		"iterations", iterations,
	)
	return sol, nil
}

// bisect narrows [lo, hi] on a monotonic branch until the residual range
// error or the bracket width is within tolerance.
func (g *Generator) bisect(rangeAt func(float64) (*trajectory.Result, error), lo, hi, muzzleVelocity float64, p SolveParams) (Solution, int, error) {
	resLo, err := rangeAt(lo)
	if err != nil {
		return Solution{}, 0, err
	}
	resHi, err := rangeAt(hi)
	if err != nil {
		return Solution{}, 0, err
	}

	fLo := branchRange(resLo) - p.TargetRange
	fHi := branchRange(resHi) - p.TargetRange

	// Endpoints may already satisfy the tolerance.
	if math.Abs(fLo) <= p.Tolerance {
		return solutionFrom(lo, muzzleVelocity, resLo), 0, nil
	}
	if math.Abs(fHi) <= p.Tolerance {
		return solutionFrom(hi, muzzleVelocity, resHi), 0, nil
	}

	// The branch must bracket the target for bisection to apply.
	if fLo*fHi > 0 {
		return Solution{MuzzleVelocity: muzzleVelocity, Status: NoSolution}, 0, nil
	}

	var iterations int
	for iterations = 1; iterations <= p.MaxIterations; iterations++ {
		mid := (lo + hi) / 2
		res, err := rangeAt(mid)
		if err != nil {
			return Solution{}, iterations, err
		}
		fMid := branchRange(res) - p.TargetRange

		if math.Abs(fMid) <= p.Tolerance {
			return solutionFrom(mid, muzzleVelocity, res), iterations, nil
		}
		if hi-lo <= bisectBracketMin {
			return Solution{MuzzleVelocity: muzzleVelocity, Status: NoSolution}, iterations, nil
		}

		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}

	return Solution{MuzzleVelocity: muzzleVelocity, Status: NoSolution}, p.MaxIterations, nil
}

// branchRange reads the impact range of a run, treating a Timeout run as
// an unreachable zero-range point so it can never satisfy a bracket.
func branchRange(res *trajectory.Result) float64 {
	if res.Status == trajectory.Timeout {
		return 0
	}
	return res.Range()
}

// maxRangeAngle locates the range-maximizing angle in [minAngle, maxAngle]
// with a coarse scan followed by golden-section refinement of the winning
// bracket.
func (g *Generator) maxRangeAngle(rangeAt func(float64) (*trajectory.Result, error), minAngle, maxAngle float64) (float64, float64, error) {
	bestAngle, bestRange := minAngle, math.Inf(-1)
	for a := minAngle; a <= maxAngle+1e-9; a += maxRangeScanStep {
		res, err := rangeAt(math.Min(a, maxAngle))
		if err != nil {
			return 0, 0, err
		}
		if r := branchRange(res); r > bestRange {
			bestAngle, bestRange = math.Min(a, maxAngle), r
		}
	}

	lo := math.Max(minAngle, bestAngle-maxRangeScanStep)
	hi := math.Min(maxAngle, bestAngle+maxRangeScanStep)

	// Golden-section search on the unimodal bracket.
	a := lo + goldenRatioSection*(hi-lo)
	b := hi - goldenRatioSection*(hi-lo)
	resA, err := rangeAt(a)
	if err != nil {
		return 0, 0, err
	}
	resB, err := rangeAt(b)
	if err != nil {
		return 0, 0, err
	}
	fA, fB := branchRange(resA), branchRange(resB)

	for hi-lo > maxRangeAngleTol {
		if fA < fB {
			lo, a, fA = a, b, fB
			b = hi - goldenRatioSection*(hi-lo)
			res, err := rangeAt(b)
			if err != nil {
				return 0, 0, err
			}
			fB = branchRange(res)
		} else {
			hi, b, fB = b, a, fA
			a = lo + goldenRatioSection*(hi-lo)
			res, err := rangeAt(a)
			if err != nil {
				return 0, 0, err
			}
			fA = branchRange(res)
		}
	}

	apex := (lo + hi) / 2
	res, err := rangeAt(apex)
	if err != nil {
		return 0, 0, err
	}
	apexRange := branchRange(res)
	if apexRange < bestRange {
		return bestAngle, bestRange, nil
	}
	return apex, apexRange, nil
}
