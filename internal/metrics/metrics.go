// Package metrics exposes Prometheus instruments for the simulation core.
// Recording is cheap and unconditional; exposition is optional and wired
// up by the cmd edge.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	integrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cannon_integrations_total",
			Help: "Total trajectory integrations by outcome.",
		},
		[]string{"outcome"},
	)

	integrationStepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cannon_integration_steps_total",
			Help: "Total RK4 steps taken across all integrations.",
		},
	)

	integrationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cannon_integration_duration_seconds",
			Help:    "Wall-clock duration of a single trajectory integration.",
			Buckets: prometheus.DefBuckets,
		},
	)

	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cannon_sweep_duration_seconds",
			Help:    "Wall-clock duration of a full firing-table sweep.",
			Buckets: prometheus.DefBuckets,
		},
	)

	solverIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cannon_solver_iterations",
			Help:    "Bisection iterations per solve-for-range call.",
			Buckets: prometheus.LinearBuckets(5, 5, 12),
		},
	)

	solvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cannon_solves_total",
			Help: "Total solve-for-range calls by convergence status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		integrationsTotal,
		integrationStepsTotal,
		integrationDuration,
		sweepDuration,
		solverIterations,
		solvesTotal,
	)
}

// Known outcome labels for RecordIntegration.
const (
	OutcomeImpact  = "impact"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// NormalizeOutcome collapses unknown outcome strings to "other" to keep
// label cardinality bounded.
func NormalizeOutcome(outcome string) string {
	switch outcome {
	case OutcomeImpact, OutcomeTimeout, OutcomeError:
		return outcome
	default:
		return "other"
	}
}

// RecordIntegration records one trajectory integration.
func RecordIntegration(outcome string, steps int, d time.Duration) {
	integrationsTotal.WithLabelValues(NormalizeOutcome(outcome)).Inc()
	integrationStepsTotal.Add(float64(steps))
	integrationDuration.Observe(d.Seconds())
}

// RecordSweep records one full firing-table sweep.
func RecordSweep(d time.Duration) {
	sweepDuration.Observe(d.Seconds())
}

// RecordSolve records one solve-for-range call.
func RecordSolve(iterations int, found bool) {
	solverIterations.Observe(float64(iterations))
	status := "no-solution"
	if found {
		status = "found"
	}
	solvesTotal.WithLabelValues(status).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
