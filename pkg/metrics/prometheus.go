// Package metrics provides Prometheus metrics for the gaffer squad service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the squad service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Placement metrics - the core of the engine
	placementsAccepted prometheus.Counter
	placementsRejected *prometheus.CounterVec
	removals           prometheus.Counter
	autofillDuration   prometheus.Histogram
	formationChanges   prometheus.Counter

	// Persistence metrics
	snapshotSaves      prometheus.Counter
	snapshotLoads      prometheus.Counter
	snapshotLoadMisses prometheus.Counter

	// Roster metrics
	rosterFetches *prometheus.CounterVec
	rosterSize    prometheus.Gauge

	// Squad state gauges
	assignedStarters prometheus.Gauge
	squadOverall     prometheus.Gauge

	// Websocket metrics
	wsClients prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// customRegistry keeps gaffer metrics separate from any default collectors.
var customRegistry = prometheus.NewRegistry()

var globalManager *Manager

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gaffer",
		subsystem:        "squad",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.placementsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "placements_accepted_total",
		Help:      "Total number of placement intents committed to the assignment",
	})

	m.placementsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "placements_rejected_total",
		Help:      "Total number of placement intents rejected, by reason",
	}, []string{"reason"})

	m.removals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "removals_total",
		Help:      "Total number of players removed from slots",
	})

	m.autofillDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "autofill_duration_milliseconds",
		Help:      "Histogram of autofill pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.formationChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "formation_changes_total",
		Help:      "Total number of formation switches",
	})

	m.snapshotSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_saves_total",
		Help:      "Total number of squad snapshots saved",
	})

	m.snapshotLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_loads_total",
		Help:      "Total number of squad snapshots loaded",
	})

	m.snapshotLoadMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_load_misses_total",
		Help:      "Total number of loads for teams with no saved squad",
	})

	m.rosterFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_fetches_total",
		Help:      "Total number of roster fetches from the backend, by outcome",
	}, []string{"outcome"})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of players in the currently loaded roster",
	})

	m.assignedStarters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assigned_starters",
		Help:      "Number of formation slots currently filled",
	})

	m.squadOverall = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "squad_overall_rating",
		Help:      "Overall rating of the currently assigned squad",
	})

	m.wsClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_clients",
		Help:      "Number of connected websocket subscribers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Handler exposes the custom registry for a /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// RecordPlacementAccepted increments the accepted placements counter.
func RecordPlacementAccepted() {
	globalManager.placementsAccepted.Inc()
}

// RecordPlacementRejected increments the rejected placements counter for a reason.
func RecordPlacementRejected(reason string) {
	globalManager.placementsRejected.WithLabelValues(reason).Inc()
}

// RecordRemoval increments the removals counter.
func RecordRemoval() {
	globalManager.removals.Inc()
}

// RecordAutofillDuration records the duration of an autofill pass in milliseconds.
func RecordAutofillDuration(ms float64) {
	globalManager.autofillDuration.Observe(ms)
}

// RecordFormationChange increments the formation changes counter.
func RecordFormationChange() {
	globalManager.formationChanges.Inc()
}

// RecordSnapshotSave increments the snapshot saves counter.
func RecordSnapshotSave() {
	globalManager.snapshotSaves.Inc()
}

// RecordSnapshotLoad increments the snapshot loads counter.
func RecordSnapshotLoad() {
	globalManager.snapshotLoads.Inc()
}

// RecordSnapshotLoadMiss increments the load-miss counter.
func RecordSnapshotLoadMiss() {
	globalManager.snapshotLoadMisses.Inc()
}

// RecordRosterFetch increments the roster fetch counter for an outcome.
func RecordRosterFetch(outcome string) {
	globalManager.rosterFetches.WithLabelValues(outcome).Inc()
}

// UpdateRosterSize sets the roster size gauge.
func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

// UpdateAssignedStarters sets the assigned starters gauge.
func UpdateAssignedStarters(n int) {
	globalManager.assignedStarters.Set(float64(n))
}

// UpdateSquadOverall sets the squad overall rating gauge.
func UpdateSquadOverall(rating float64) {
	globalManager.squadOverall.Set(rating)
}

// UpdateWSClients sets the websocket clients gauge.
func UpdateWSClients(n int) {
	globalManager.wsClients.Set(float64(n))
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}
