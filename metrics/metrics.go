// Package metrics provides Prometheus metrics for the dosage API: the
// usual HTTP request counters plus domain counters that track calculation
// outcomes and safety trips.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	DosageCalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dosage_calculations_total",
			Help: "Dose calculations by medication, outcome and safety level",
		},
		[]string{"medication", "outcome", "safety_level"},
	)

	DoseExceededTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dose_exceeded_total",
			Help: "Calculations that tripped the maximum-dose guardrail",
		},
		[]string{"medication"},
	)

	FormularyReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formulary_reloads_total",
			Help: "Formulary reload attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(DosageCalculationsTotal)
	prometheus.MustRegister(DoseExceededTotal)
	prometheus.MustRegister(FormularyReloadsTotal)
}
