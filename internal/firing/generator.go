// Package firing drives the trajectory integrator across elevation angles:
// sweeping a firing table and root-finding the angle that reaches a
// requested target range.
package firing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/metrics"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

// SolutionStatus reports whether a firing solution converged.
type SolutionStatus int

const (
	Found SolutionStatus = iota
	NoSolution
)

func (s SolutionStatus) String() string {
	if s == Found {
		return "found"
	}
	return "no-solution"
}

// Solution is one row of a firing table: the elevation angle and the
// resulting impact conditions. Immutable once produced.
type Solution struct {
	AngleDeg       float64
	MuzzleVelocity float64
	Range          float64
	TimeOfFlight   float64
	ImpactSpeed    float64
	Drift          float64 // cross-range at impact, positive left of fire
	Terminal       trajectory.ProjectileState
	Status         SolutionStatus
}

// Table is an ordered firing table, ascending by elevation angle.
// Read-only to consumers.
type Table []Solution

// Generator orchestrates integration runs for tables and solves.
type Generator struct {
	integrator *trajectory.Integrator
	workers    int
	logger     *slog.Logger
}

// NewGenerator creates a generator. workers bounds the concurrency of
// Sweep; zero or negative means runtime.NumCPU(). A nil logger falls back
// to slog.Default().
func NewGenerator(it *trajectory.Integrator, workers int, logger *slog.Logger) *Generator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{integrator: it, workers: workers, logger: logger}
}

// DefaultAngles returns the stock table angles: 15° through 75° in 5° steps.
func DefaultAngles() []float64 {
	angles := make([]float64, 0, 13)
	for a := 15.0; a <= 75.0; a += 5.0 {
		angles = append(angles, a)
	}
	return angles
}

// solutionFrom converts an integration result into a table row. A Timeout
// run has no impact point, so it carries NoSolution status.
func solutionFrom(angleDeg, muzzleVelocity float64, res *trajectory.Result) Solution {
	sol := Solution{
		AngleDeg:       angleDeg,
		MuzzleVelocity: muzzleVelocity,
		Terminal:       res.Terminal,
		Status:         Found,
	}
	if res.Status == trajectory.Timeout {
		sol.Status = NoSolution
		return sol
	}
	sol.Range = res.Range()
	sol.TimeOfFlight = res.TimeOfFlight()
	sol.ImpactSpeed = res.ImpactSpeed()
	sol.Drift = res.Drift()
	return sol
}

// Sweep integrates once per angle and collects the solutions in ascending
// angle order. Each run is independent and touches no shared mutable
// state, so angles are evaluated concurrently, bounded by a semaphore.
// With an empty angle list the stock DefaultAngles sweep is used.
func (g *Generator) Sweep(ctx context.Context, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, muzzleVelocity float64, angles []float64) (Table, error) {
	if len(angles) == 0 {
		angles = DefaultAngles()
	}

	start := time.Now()

	type outcome struct {
		sol Solution
		err error
	}
	results := make([]outcome, len(angles))
	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup

	for i, angle := range angles {
		wg.Add(1)
		go func(idx int, a float64) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[idx] = outcome{err: err}
				return
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = outcome{err: ctx.Err()}
				return
			}

			res, err := g.integrator.Integrate(cfg, env, a, muzzleVelocity)
			if err != nil {
				results[idx] = outcome{err: fmt.Errorf("angle %.2f°: %w", a, err)}
				return
			}
			results[idx] = outcome{sol: solutionFrom(a, muzzleVelocity, res)}
		}(i, angle)
	}

	wg.Wait()

	table := make(Table, 0, len(angles))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		table = append(table, r.sol)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].AngleDeg < table[j].AngleDeg })

	metrics.RecordSweep(time.Since(start))
	g.logger.Debug("sweep complete",
		"angles", len(angles),
		"workers", g.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return table, nil
}

// CurvePoint is one sample of the range-vs-angle curve.
type CurvePoint struct {
	AngleDeg float64
	Range    float64
}

// RangeCurve samples the range-vs-angle relation across [minAngle, maxAngle]
// at n evenly spaced angles, for the plotting edge. Timeout angles are
// skipped.
func (g *Generator) RangeCurve(ctx context.Context, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, muzzleVelocity, minAngle, maxAngle float64, n int) ([]CurvePoint, error) {
	if n < 2 || maxAngle <= minAngle {
		return nil, fmt.Errorf("%w: range curve needs ≥ 2 points over a positive angle span",
			launcher.ErrInvalidConfiguration)
	}

	step := (maxAngle - minAngle) / float64(n-1)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = minAngle + float64(i)*step
	}

	table, err := g.Sweep(ctx, cfg, env, muzzleVelocity, angles)
	if err != nil {
		return nil, err
	}

	points := make([]CurvePoint, 0, len(table))
	for _, sol := range table {
		if sol.Status != Found {
			continue
		}
		points = append(points, CurvePoint{AngleDeg: sol.AngleDeg, Range: sol.Range})
	}
	return points, nil
}
