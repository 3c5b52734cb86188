// Package metrics provides Prometheus metrics for the swing detection
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
	defaultNamespace       = "swingsense"
)

// Confidence scores land on a 0-100 scale; bucket at the decision edges.
var confidenceBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the detection service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ingest metrics
	samplesIngested prometheus.Counter
	samplesRejected prometheus.Counter
	bufferSize      prometheus.Gauge

	// Analysis metrics
	analysesRun     prometheus.Counter
	analysisLatency prometheus.Histogram
	analysisPanics  prometheus.Counter
	stalePasses     prometheus.Counter
	candidatesFound prometheus.Counter
	swingsDetected  prometheus.Counter
	confidence      prometheus.Histogram

	// Calibration metrics
	expectedTempo prometheus.Gauge

	// Session metrics
	sessionSwings prometheus.Gauge

	// Queue metrics
	queueSize          prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Transport metrics
	wsClients    prometheus.Gauge
	mqttMessages prometheus.Counter
	mqttErrors   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.register()
	return m
}

// register builds and registers every metric on the configured registry.
func (m *Manager) register() {
	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.customLabels),
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.customLabels),
		}
	}
	histOpts := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			Buckets:     buckets,
			ConstLabels: prometheus.Labels(m.customLabels),
		}
	}

	m.samplesIngested = prometheus.NewCounter(counterOpts("samples_ingested_total", "Motion samples accepted into the buffer."))
	m.samplesRejected = prometheus.NewCounter(counterOpts("samples_rejected_total", "Motion samples rejected by the ordering guard or pre-init."))
	m.bufferSize = prometheus.NewGauge(gaugeOpts("buffer_size", "Current number of buffered samples."))

	m.analysesRun = prometheus.NewCounter(counterOpts("analyses_total", "Analysis passes executed."))
	m.analysisLatency = prometheus.NewHistogram(histOpts("analysis_latency_ms", "Latency of one analysis pass in milliseconds.", m.histogramBuckets))
	m.analysisPanics = prometheus.NewCounter(counterOpts("analysis_panics_total", "Analysis passes aborted by a recovered panic."))
	m.stalePasses = prometheus.NewCounter(counterOpts("analysis_stale_total", "Analysis passes discarded because the session was reset mid-flight."))
	m.candidatesFound = prometheus.NewCounter(counterOpts("candidates_total", "Swing candidates located across all passes."))
	m.swingsDetected = prometheus.NewCounter(counterOpts("swings_detected_total", "Detections emitted to subscribers."))
	m.confidence = prometheus.NewHistogram(histOpts("confidence", "Confidence distribution of analysis passes.", confidenceBuckets))

	m.expectedTempo = prometheus.NewGauge(gaugeOpts("expected_tempo", "Personalized expected tempo after calibration feedback."))
	m.sessionSwings = prometheus.NewGauge(gaugeOpts("session_swings", "Swings stored for the active session."))

	m.queueSize = prometheus.NewGauge(gaugeOpts("queue_size", "Samples currently queued for ingestion."))
	m.queueUtilization = prometheus.NewGauge(gaugeOpts("queue_utilization", "Queue fill ratio between 0 and 1."))
	m.queueEnqueues = prometheus.NewCounter(counterOpts("queue_enqueues_total", "Samples enqueued for ingestion."))
	m.queueDequeues = prometheus.NewCounter(counterOpts("queue_dequeues_total", "Samples drained into the engine."))
	m.queueEnqueueErrors = prometheus.NewCounter(counterOpts("queue_enqueue_errors_total", "Samples dropped at the queue boundary."))

	m.wsClients = prometheus.NewGauge(gaugeOpts("ws_clients", "Connected WebSocket result subscribers."))
	m.mqttMessages = prometheus.NewCounter(counterOpts("mqtt_messages_total", "Sample payloads received over MQTT."))
	m.mqttErrors = prometheus.NewCounter(counterOpts("mqtt_errors_total", "MQTT payloads that failed to decode or enqueue."))

	m.httpRequests = prometheus.NewCounterVec(counterOpts("http_requests_total", "HTTP requests by endpoint, method, and status."), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histOpts("http_request_duration_ms", "HTTP request duration in milliseconds.", m.histogramBuckets), []string{"endpoint"})

	m.systemMemoryUsage = prometheus.NewGauge(gaugeOpts("system_memory_bytes", "Heap bytes currently allocated."))
	m.systemGoroutineCount = prometheus.NewGauge(gaugeOpts("system_goroutines", "Current goroutine count."))
	m.systemGCPauseTime = prometheus.NewHistogram(histOpts("system_gc_pause_ms", "Average GC pause time in milliseconds.", m.histogramBuckets))

	collectors := []prometheus.Collector{
		m.samplesIngested, m.samplesRejected, m.bufferSize,
		m.analysesRun, m.analysisLatency, m.analysisPanics, m.stalePasses,
		m.candidatesFound, m.swingsDetected, m.confidence,
		m.expectedTempo, m.sessionSwings,
		m.queueSize, m.queueUtilization, m.queueEnqueues, m.queueDequeues, m.queueEnqueueErrors,
		m.wsClients, m.mqttMessages, m.mqttErrors,
		m.httpRequests, m.httpRequestDuration,
		m.systemMemoryUsage, m.systemGoroutineCount, m.systemGCPauseTime,
	}
	for _, c := range collectors {
		// Ignore duplicate registration so tests can build extra managers.
		_ = m.registry.Register(c)
	}
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Ingest helpers.

// RecordSampleIngested counts one accepted sample.
func RecordSampleIngested() { globalManager.samplesIngested.Inc() }

// RecordSampleRejected counts one rejected sample.
func RecordSampleRejected() { globalManager.samplesRejected.Inc() }

// UpdateBufferSize sets the current buffer length.
func UpdateBufferSize(n int) { globalManager.bufferSize.Set(float64(n)) }

// Analysis helpers.

// RecordAnalysisRun counts one analysis pass.
func RecordAnalysisRun() { globalManager.analysesRun.Inc() }

// RecordAnalysisLatency observes one pass duration in milliseconds.
func RecordAnalysisLatency(ms float64) { globalManager.analysisLatency.Observe(ms) }

// RecordAnalysisPanic counts one recovered analysis panic.
func RecordAnalysisPanic() { globalManager.analysisPanics.Inc() }

// RecordStalePass counts one discarded stale pass.
func RecordStalePass() { globalManager.stalePasses.Inc() }

// RecordCandidates counts located candidates for one pass.
func RecordCandidates(n int) { globalManager.candidatesFound.Add(float64(n)) }

// RecordSwingDetected counts one emitted detection.
func RecordSwingDetected() { globalManager.swingsDetected.Inc() }

// RecordConfidence observes one pass confidence.
func RecordConfidence(c float64) { globalManager.confidence.Observe(c) }

// Calibration and session helpers.

// UpdateExpectedTempo sets the current personalized tempo expectation.
func UpdateExpectedTempo(t float64) { globalManager.expectedTempo.Set(t) }

// UpdateSessionSwings sets the stored swing count for the session.
func UpdateSessionSwings(n int) { globalManager.sessionSwings.Set(float64(n)) }

// Queue helpers.

// UpdateQueueSize sets the current queue length.
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }

// UpdateQueueUtilization sets the queue fill ratio.
func UpdateQueueUtilization(u float64) { globalManager.queueUtilization.Set(u) }

// RecordQueueEnqueue counts one successful enqueue.
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }

// RecordQueueDequeue counts one drained sample.
func RecordQueueDequeue() { globalManager.queueDequeues.Inc() }

// RecordQueueEnqueueError counts one dropped sample.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// Transport helpers.

// UpdateWSClients sets the connected WebSocket client count.
func UpdateWSClients(n int) { globalManager.wsClients.Set(float64(n)) }

// RecordMQTTMessage counts one received MQTT payload.
func RecordMQTTMessage() { globalManager.mqttMessages.Inc() }

// RecordMQTTError counts one failed MQTT payload.
func RecordMQTTError() { globalManager.mqttErrors.Inc() }

// HTTP helpers.

// RecordHTTPRequest counts one request by endpoint, method, and status.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(ms)
}

// System helpers.

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime observes the average GC pause in milliseconds.
func RecordSystemGCPauseTime(ms float64) { globalManager.systemGCPauseTime.Observe(ms) }
