// Package obsmetrics collects Prometheus metrics for the optimization
// pipeline: solve outcomes/duration, matrix/cache behavior, and problem
// size, the same way the wider logistics stack instruments its solvers.
package obsmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the engine's metric container, safe for concurrent use.
type Metrics struct {
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	RouteTotalDistance   *prometheus.GaugeVec
	UnassignedDeliveries *prometheus.GaugeVec

	MatrixBuildTotal    *prometheus.CounterVec
	MatrixBuildDuration *prometheus.HistogramVec
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec

	ProblemLocationsTotal  *prometheus.HistogramVec
	ProblemVehiclesTotal   *prometheus.HistogramVec
	ProblemDeliveriesTotal *prometheus.HistogramVec

	RerouteOperationsTotal *prometheus.CounterVec

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// Init registers the engine's collectors under namespace/subsystem and
// sets them as the process default.
func Init(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "solve_operations_total",
				Help: "Total number of optimize operations by status",
			},
			[]string{"status"},
		),
		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name:    "solve_duration_seconds",
				Help:    "Duration of optimize operations",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"status"},
		),
		RouteTotalDistance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "route_total_distance_km",
				Help: "Total distance of the last solved route set",
			},
			[]string{"request_id"},
		),
		UnassignedDeliveries: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "unassigned_deliveries",
				Help: "Number of deliveries left unassigned by the last solve",
			},
			[]string{"request_id"},
		),
		MatrixBuildTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "matrix_build_total",
				Help: "Total distance-matrix builds by source (haversine, api, fallback)",
			},
			[]string{"source"},
		),
		MatrixBuildDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name:    "matrix_build_duration_seconds",
				Help:    "Duration of distance-matrix construction",
				Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10},
			},
			[]string{"source"},
		),
		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "cache_hits_total",
				Help: "Total cache hits by cache kind (matrix, result)",
			},
			[]string{"kind"},
		),
		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "cache_misses_total",
				Help: "Total cache misses by cache kind (matrix, result)",
			},
			[]string{"kind"},
		),
		ProblemLocationsTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name:    "problem_locations_total",
				Help:    "Number of locations in solved problems",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"operation"},
		),
		ProblemVehiclesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name:    "problem_vehicles_total",
				Help:    "Number of vehicles in solved problems",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"operation"},
		),
		ProblemDeliveriesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name:    "problem_deliveries_total",
				Help:    "Number of deliveries in solved problems",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"operation"},
		),
		RerouteOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "reroute_operations_total",
				Help: "Total reroute operations by trigger (traffic, delay, roadblock)",
			},
			[]string{"trigger", "status"},
		),
		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "service_info",
				Help: "Engine build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-default metrics, initializing them with
// fallback names if Init was never called.
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init("routeopt", "engine")
	}
	return defaultMetrics
}

// RecordSolve records the outcome and duration of an Optimize call.
func (m *Metrics) RecordSolve(status string, duration time.Duration) {
	m.SolveOperationsTotal.WithLabelValues(status).Inc()
	m.SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordProblemSize records the shape of a solved problem.
func (m *Metrics) RecordProblemSize(operation string, locations, vehicles, deliveries int) {
	m.ProblemLocationsTotal.WithLabelValues(operation).Observe(float64(locations))
	m.ProblemVehiclesTotal.WithLabelValues(operation).Observe(float64(vehicles))
	m.ProblemDeliveriesTotal.WithLabelValues(operation).Observe(float64(deliveries))
}

// RecordCache records a cache hit or miss for the given cache kind.
func (m *Metrics) RecordCache(kind string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(kind).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(kind).Inc()
}

// RecordMatrixBuild records a distance-matrix construction by source.
func (m *Metrics) RecordMatrixBuild(source string, duration time.Duration) {
	m.MatrixBuildTotal.WithLabelValues(source).Inc()
	m.MatrixBuildDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordReroute records a reroute operation by trigger and outcome.
func (m *Metrics) RecordReroute(trigger, status string) {
	m.RerouteOperationsTotal.WithLabelValues(trigger, status).Inc()
}

// SetServiceInfo publishes build metadata as a constant gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}
