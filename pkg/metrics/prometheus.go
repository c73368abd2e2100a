// Package metrics provides Prometheus metrics for the explore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the explore service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion - view-event write path
	viewEventsIngested  prometheus.Counter
	viewEventsDuplicate prometheus.Counter
	viewEventsDropped   prometheus.Counter

	// Retrieval - the four read modes
	feedRequests       *prometheus.CounterVec
	rankingDuration    prometheus.Histogram
	eligibleCandidates prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue health
	queueDepth         prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker health
	workerCount   prometheus.Gauge
	workerErrors  prometheus.Counter
	appendLatency prometheus.Histogram

	// Collection scale
	totalCars   prometheus.Gauge
	totalEvents prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "revline",
		subsystem:        "explore",
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

	m.viewEventsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_events_ingested_total",
		Help:      "Total number of view events appended to the analytics log",
	})

	m.viewEventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_events_duplicate_total",
		Help:      "Total number of duplicate view-event submissions detected",
	})

	m.viewEventsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_events_dropped_total",
		Help:      "Total number of view events rejected for backpressure",
	})

	m.feedRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_requests_total",
			Help:      "Total explore retrieval requests by mode (ranked, search, filtered, trending)",
		},
		[]string{"mode"},
	)

	m.rankingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_duration_milliseconds",
		Help:      "Time spent scanning, scoring and sorting one ranked feed request",
		Buckets:   m.histogramBuckets,
	})

	m.eligibleCandidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eligible_candidates",
		Help:      "Candidate set size observed by the most recent ranked feed request",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_queue_depth",
		Help:      "Current number of view events waiting in the ingestion queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_queue_capacity",
		Help:      "Configured capacity of the ingestion queue",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_queue_enqueues_total",
		Help:      "Total successful enqueues onto the ingestion queue",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_queue_dequeues_total",
		Help:      "Total events drained from the ingestion queue",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_queue_enqueue_errors_total",
		Help:      "Total enqueue failures (queue full, closed, or cancelled)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of ingestion workers draining the queue",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total worker failures appending events to the store",
	})

	m.appendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_append_latency_milliseconds",
		Help:      "Latency of appending one event to the analytics log",
		Buckets:   m.histogramBuckets,
	})

	m.totalCars = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_cars",
		Help:      "Total car records visible to the engine",
	})

	m.totalEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_events",
		Help:      "Total analytics events in the log",
	})
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager, for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordViewEventIngested increments the ingested-events counter.
func RecordViewEventIngested() { globalManager.viewEventsIngested.Inc() }

// RecordViewEventDuplicate increments the duplicate-submission counter.
func RecordViewEventDuplicate() { globalManager.viewEventsDuplicate.Inc() }

// RecordViewEventDropped increments the backpressure-drop counter.
func RecordViewEventDropped() { globalManager.viewEventsDropped.Inc() }

// RecordFeedRequest counts one retrieval request for the given mode.
func RecordFeedRequest(mode string) { globalManager.feedRequests.WithLabelValues(mode).Inc() }

// RecordRankingDuration observes one ranked feed computation in milliseconds.
func RecordRankingDuration(ms float64) { globalManager.rankingDuration.Observe(ms) }

// UpdateEligibleCandidates records the candidate set size of the last
// ranked request.
func UpdateEligibleCandidates(n int) { globalManager.eligibleCandidates.Set(float64(n)) }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// UpdateQueueDepth records the current ingestion queue depth.
func UpdateQueueDepth(n int) { globalManager.queueDepth.Set(float64(n)) }

// UpdateQueueCapacity records the configured queue capacity.
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }

// RecordQueueEnqueue counts one successful enqueue.
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }

// RecordQueueDequeue counts one drained event.
func RecordQueueDequeue() { globalManager.queueDequeues.Inc() }

// RecordQueueEnqueueError counts one failed enqueue.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerCount records the ingestion worker count.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordWorkerError counts one worker append failure.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordAppendLatency observes one event append in milliseconds.
func RecordAppendLatency(ms float64) { globalManager.appendLatency.Observe(ms) }

// UpdateTotalCars records the car collection size.
func UpdateTotalCars(n int) { globalManager.totalCars.Set(float64(n)) }

// UpdateTotalEvents records the event log size.
func UpdateTotalEvents(n int) { globalManager.totalEvents.Set(float64(n)) }
