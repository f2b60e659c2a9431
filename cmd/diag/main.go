// Command diag cross-checks the integrator against the closed-form vacuum
// solution and dumps a sample firing table for a stock cannon. Useful as a
// quick sanity run after touching the physics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/Potatov1/potato-cannon-sim/internal/firing"
	"github.com/Potatov1/potato-cannon-sim/internal/fuel"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Vacuum cross-check: range = v0²·sin(2θ)/g.
	const (
		v0    = 50.0
		theta = 45.0
		g     = 9.81
	)
	vacuumCfg := launcher.LauncherConfig{
		BarrelLength:    1.0,
		BoreDiameter:    0.075,
		ChamberVolume:   0.005,
		ProjectileMass:  0.25,
		DragCoefficient: 0,
		Efficiency:      0.15,
		Gravity:         g,
	}
	env := launcher.EnvironmentConditions{AzimuthDeg: 90}

	integrator := trajectory.New(trajectory.Config{Step: 0.001})
	res, err := integrator.Integrate(vacuumCfg, env, theta, v0)
	if err != nil {
		fmt.Println("ERROR integrating vacuum shot:", err)
		os.Exit(1)
	}

	analytic := v0 * v0 * math.Sin(2*theta*math.Pi/180) / g
	deviation := math.Abs(res.Range()-analytic) / analytic * 100
	fmt.Printf("Vacuum check: simulated %.2f m, closed form %.2f m, deviation %.4f%%\n",
		res.Range(), analytic, deviation)
	if deviation > 0.5 {
		fmt.Println("ERROR: vacuum deviation exceeds 0.5%")
		os.Exit(1)
	}

	// Sample firing table for a stock propane cannon.
	cfg := launcher.LauncherConfig{
		BarrelLength:    1.5,
		BoreDiameter:    0.075,
		ChamberLength:   0.5,
		ChamberDiameter: 0.11,
		ProjectileMass:  0.25,
		DragCoefficient: 0.47,
		Fuel:            "propane",
		Efficiency:      0.15,
	}
	realEnv := launcher.EnvironmentConditions{
		LatitudeDeg:  45,
		AzimuthDeg:   90,
		LaunchHeight: 1,
	}

	mv, err := fuel.EstimateMuzzleVelocity(cfg, fuel.NewTable(), fuel.DensityModel{})
	if err != nil {
		fmt.Println("ERROR estimating muzzle velocity:", err)
		os.Exit(1)
	}
	fmt.Printf("Stock cannon muzzle velocity: %.2f m/s\n", mv)

	gen := firing.NewGenerator(integrator, 0, logger)
	table, err := gen.Sweep(context.Background(), cfg, realEnv, mv, nil)
	if err != nil {
		fmt.Println("ERROR sweeping firing table:", err)
		os.Exit(1)
	}

	fmt.Println("Angle | Range (m) | Time (s) | Impact Vel (m/s) | Drift (m)")
	for _, sol := range table {
		fmt.Printf("%5.0f | %9.1f | %8.2f | %16.2f | %9.2f\n",
			sol.AngleDeg, sol.Range, sol.TimeOfFlight, sol.ImpactSpeed, sol.Drift)
	}
}
