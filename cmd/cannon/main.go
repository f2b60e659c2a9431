// Command cannon is the firing-table edge: it builds a launcher profile
// from flags, estimates the muzzle velocity, sweeps or solves a firing
// table, and prints the result. It owns all I/O; the simulation core
// stays pure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gorilla/mux"

	"github.com/Potatov1/potato-cannon-sim/internal/atmos"
	"github.com/Potatov1/potato-cannon-sim/internal/firing"
	"github.com/Potatov1/potato-cannon-sim/internal/fuel"
	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
	"github.com/Potatov1/potato-cannon-sim/internal/metrics"
	"github.com/Potatov1/potato-cannon-sim/internal/plot"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	var (
		barrelLength    = flag.Float64("barrel-length", 1.5, "barrel length (m)")
		boreDiameter    = flag.Float64("bore", 0.075, "bore diameter (m)")
		chamberLength   = flag.Float64("chamber-length", 0.5, "chamber length (m)")
		chamberDiameter = flag.Float64("chamber-diameter", 0.11, "chamber diameter (m)")
		chamberVolume   = flag.Float64("chamber-volume", 0, "explicit chamber volume (m³), overrides chamber geometry")
		mass            = flag.Float64("mass", 0.25, "projectile mass (kg)")
		dragCoeff       = flag.Float64("cd", 0.47, "ballistic drag coefficient")
		fuelName        = flag.String("fuel", "propane", "fuel identifier")
		fuelDensity     = flag.Float64("fuel-energy-density", 0, "user-defined fuel energy density (J/m³), bypasses the table")
		efficiency      = flag.Float64("efficiency", 0.15, "combustion efficiency (0,1]")
		energyModel     = flag.String("energy-model", "density", "muzzle energy model: density or adiabatic")

		altitude     = flag.Float64("altitude", 0, "site altitude above sea level (m)")
		temperature  = flag.Float64("temp", tempUnset, "ambient temperature (°C); omit for standard lapse")
		latitude     = flag.Float64("lat", 0, "latitude (deg)")
		azimuth      = flag.Float64("azimuth", 90, "azimuth of fire (deg, 0=N 90=E)")
		windSpeed    = flag.Float64("wind-speed", 0, "wind speed (m/s)")
		windBearing  = flag.Float64("wind-bearing", 90, "bearing the wind blows toward (deg)")
		launchHeight = flag.Float64("launch-height", 1.0, "muzzle height above ground (m)")

		angleList   = flag.String("angles", "", "comma-separated elevation angles (deg); empty for the stock 15..75 table")
		targetRange = flag.Float64("target-range", 0, "solve for the angle reaching this range (m) instead of sweeping")
		tolerance   = flag.Float64("tolerance", 0.5, "solve residual tolerance (m)")
		descending  = flag.Bool("descending", false, "solve on the branch above the range-maximizing angle")

		plotPath    = flag.String("plot", "", "write a range-vs-angle PNG to this path")
		profilePath = flag.String("plot-profile", "", "write a trajectory-profile PNG (best angle) to this path")
	)
	flag.Parse()

	cfg := launcher.LauncherConfig{
		BarrelLength:      *barrelLength,
		BoreDiameter:      *boreDiameter,
		ChamberVolume:     *chamberVolume,
		ChamberLength:     *chamberLength,
		ChamberDiameter:   *chamberDiameter,
		ProjectileMass:    *mass,
		DragCoefficient:   *dragCoeff,
		Fuel:              *fuelName,
		FuelEnergyDensity: *fuelDensity,
		Efficiency:        *efficiency,
	}

	env := launcher.EnvironmentConditions{
		WindSpeed:      *windSpeed,
		WindBearingDeg: *windBearing,
		Altitude:       *altitude,
		LatitudeDeg:    *latitude,
		AzimuthDeg:     *azimuth,
		LaunchHeight:   *launchHeight,
	}
	if *temperature != tempUnset {
		env.Temperature = *temperature
		env.TemperatureSet = true
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid launcher configuration", "error", err)
		os.Exit(1)
	}
	if err := env.Validate(); err != nil {
		logger.Error("invalid environment", "error", err)
		os.Exit(1)
	}

	simCfg := loadSimConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional metrics/health listener for long sweeps.
	metricsSrv := startMetricsServer(logger)

	table := fuel.NewTable()
	var model fuel.EnergyModel = fuel.DensityModel{}
	if *energyModel == "adiabatic" {
		model = fuel.AdiabaticModel{}
	}

	v0, err := fuel.EstimateMuzzleVelocity(cfg, table, model)
	if err != nil {
		logger.Error("muzzle velocity estimation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Estimated muzzle velocity: %.2f m/s\n", v0)
	fmt.Printf("Barrel volume: %.2f L\n", cfg.BarrelVolume()*1000)
	fmt.Printf("Chamber volume: %.2f L\n", cfg.EffectiveChamberVolume()*1000)
	fmt.Printf("Chamber-to-barrel ratio: %.2f:1\n", cfg.EffectiveChamberVolume()/cfg.BarrelVolume())
	if rho, err := atmos.SiteDensity(env); err == nil {
		fmt.Printf("Site air density: %.4f kg/m³\n", rho)
	}

	integrator := trajectory.New(trajectory.Config{
		Step:          simCfg.Step,
		MaxFlightTime: simCfg.MaxFlightTime,
	})
	gen := firing.NewGenerator(integrator, simCfg.Workers, logger)

	if *targetRange > 0 {
		runSolve(ctx, logger, gen, cfg, env, v0, firing.SolveParams{
			TargetRange:      *targetRange,
			Tolerance:        *tolerance,
			DescendingBranch: *descending,
		})
	} else {
		runSweep(ctx, logger, gen, cfg, env, v0, *angleList)
	}

	if *plotPath != "" {
		points, err := gen.RangeCurve(ctx, cfg, env, v0, 10, 80, 50)
		if err != nil {
			logger.Error("range curve sampling failed", "error", err)
			os.Exit(1)
		}
		if err := plot.RangeCurvePNG(points, *plotPath); err != nil {
			logger.Error("plot failed", "error", err)
			os.Exit(1)
		}
		logger.Info("wrote range curve", "path", *plotPath)
	}

	if *profilePath != "" {
		res, err := integrator.Integrate(cfg, env, 45, v0)
		if err != nil {
			logger.Error("profile integration failed", "error", err)
			os.Exit(1)
		}
		if err := plot.TrajectoryProfilePNG(res.Samples, *profilePath); err != nil {
			logger.Error("plot failed", "error", err)
			os.Exit(1)
		}
		logger.Info("wrote trajectory profile", "path", *profilePath)
	}

	shutdownMetricsServer(logger, metricsSrv)
}

// tempUnset marks the -temp flag as unset. A user-supplied temperature of
// exactly this value is not meaningful.
const tempUnset = -9999.0

func runSweep(ctx context.Context, logger *slog.Logger, gen *firing.Generator, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, v0 float64, angleList string) {
	angles, err := parseAngles(angleList)
	if err != nil {
		logger.Error("invalid angle list", "error", err)
		os.Exit(1)
	}

	table, err := gen.Sweep(ctx, cfg, env, v0, angles)
	if err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n=== Firing Table (with Coriolis) ===")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Angle\tRange (m)\tTime (s)\tImpact Vel (m/s)\tDrift (m)")
	for _, sol := range table {
		if sol.Status != firing.Found {
			fmt.Fprintf(w, "%.0f°\t-\t-\t-\t- (no impact)\n", sol.AngleDeg)
			continue
		}
		fmt.Fprintf(w, "%.0f°\t%.1f\t%.2f\t%.2f\t%.2f\n",
			sol.AngleDeg, sol.Range, sol.TimeOfFlight, sol.ImpactSpeed, sol.Drift)
	}
	w.Flush()
}

func runSolve(ctx context.Context, logger *slog.Logger, gen *firing.Generator, cfg launcher.LauncherConfig, env launcher.EnvironmentConditions, v0 float64, params firing.SolveParams) {
	sol, err := gen.SolveForRange(ctx, cfg, env, v0, params)
	if err != nil {
		logger.Error("solve failed", "error", err)
		os.Exit(1)
	}

	if sol.Status != firing.Found {
		fmt.Printf("Target range %.1f m unreachable (ceiling %.1f m at %.2f°)\n",
			params.TargetRange, sol.Range, sol.AngleDeg)
		return
	}
	fmt.Printf("Solution: angle %.2f° | range %.1f m | time %.2f s | impact %.2f m/s | drift %.2f m\n",
		sol.AngleDeg, sol.Range, sol.TimeOfFlight, sol.ImpactSpeed, sol.Drift)
}

func parseAngles(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	angles := make([]float64, 0, len(parts))
	for _, p := range parts {
		a, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("angle %q: %w", p, err)
		}
		angles = append(angles, a)
	}
	return angles, nil
}

// simConfig holds integration tuning loaded from environment variables.
type simConfig struct {
	Step          float64
	MaxFlightTime float64
	Workers       int
}

func loadSimConfig(logger *slog.Logger) simConfig {
	cfg := simConfig{
		Step:          0.001,
		MaxFlightTime: 300,
		Workers:       runtime.NumCPU(),
	}

	if v := os.Getenv("CANNON_STEP_MS"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			logger.Warn("invalid CANNON_STEP_MS value, using default", "value", v, "default_ms", 1)
		} else {
			cfg.Step = n / 1000
		}
	}

	if v := os.Getenv("CANNON_MAX_FLIGHT_TIME"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			logger.Warn("invalid CANNON_MAX_FLIGHT_TIME value, using default", "value", v, "default_s", 300)
		} else {
			cfg.MaxFlightTime = n
		}
	}

	if v := os.Getenv("CANNON_SWEEP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid CANNON_SWEEP_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}

	logger.Info("simulation config",
		"step_ms", cfg.Step*1000,
		"max_flight_time_s", cfg.MaxFlightTime,
		"workers", cfg.Workers,
	)
	return cfg
}

// startMetricsServer exposes /metrics, /healthz and /readyz when
// CANNON_METRICS_ADDR is set, for scraping during long sweeps.
func startMetricsServer(logger *slog.Logger) *http.Server {
	addr := os.Getenv("CANNON_METRICS_ADDR")
	if addr == "" {
		return nil
	}

	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready\n"))
	})

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		logger.Info("starting metrics server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server listen error", "error", err)
		}
	}()
	return srv
}

func shutdownMetricsServer(logger *slog.Logger, srv *http.Server) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}
}
