// Package metrics provides Prometheus metrics for the talentdesk console.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the console exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline
	stageChanges   *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	candidateTotal prometheus.Gauge

	// Similarity
	similarityRankings prometheus.Counter
	similarityLatency  prometheus.Histogram
	similarityPoolSize prometheus.Histogram

	// Application wizard
	wizardTransitions *prometheus.CounterVec
	wizardSubmissions prometheus.Counter
	wizardDuplicates  prometheus.Counter
	wizardSessions    prometheus.Gauge

	// Portal, interviews, offers
	settingsChanges    *prometheus.CounterVec
	settingsSaves      prometheus.Counter
	interviewScheduled prometheus.Counter
	offerTransitions   *prometheus.CounterVec

	// Notifications
	notifyQueued    *prometheus.CounterVec
	notifyDelivered *prometheus.CounterVec
	notifyDropped   *prometheus.CounterVec
	queueSize       prometheus.Gauge
	queueCapacity   prometheus.Gauge
	workerCount     prometheus.Gauge
	deliveryLatency prometheus.Histogram

	// Store
	storeQueryLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByComponent   *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "talentdesk",
		subsystem:        "console",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	m.stageChanges = m.counterVec("stage_changes_total", "Candidate stage changes by target stage", "stage")
	m.rejections = m.counterVec("rejections_total", "Candidate rejections by whether the candidate was notified", "notified")
	m.candidateTotal = m.gauge("candidates", "Candidates currently tracked")

	m.similarityRankings = m.counter("similarity_rankings_total", "Similar-candidate rankings computed")
	m.similarityLatency = m.histogram("similarity_latency_milliseconds", "Similar-candidate ranking latency in milliseconds", m.histogramBuckets)
	m.similarityPoolSize = m.histogram("similarity_pool_size", "Candidates scored per similarity ranking", []float64{5, 10, 25, 50, 100, 250})

	m.wizardTransitions = m.counterVec("wizard_transitions_total", "Application wizard transitions by action", "action")
	m.wizardSubmissions = m.counter("wizard_submissions_total", "Applications submitted through the wizard")
	m.wizardDuplicates = m.counter("wizard_duplicate_submissions_total", "Repeated submissions of an already submitted application")
	m.wizardSessions = m.gauge("wizard_sessions", "Open application wizard sessions")

	m.settingsChanges = m.counterVec("portal_setting_changes_total", "Careers portal setting changes by section", "section")
	m.settingsSaves = m.counter("portal_settings_saves_total", "Careers portal settings saves")
	m.interviewScheduled = m.counter("interviews_scheduled_total", "Interviews scheduled")
	m.offerTransitions = m.counterVec("offer_transitions_total", "Offer status transitions by target status", "status")

	m.notifyQueued = m.counterVec("notifications_queued_total", "Notifications queued by kind", "kind")
	m.notifyDelivered = m.counterVec("notifications_delivered_total", "Notifications delivered to the outbox by kind", "kind")
	m.notifyDropped = m.counterVec("notifications_dropped_total", "Notifications dropped by reason", "reason")
	m.queueSize = m.gauge("notify_queue_size", "Current notification queue length")
	m.queueCapacity = m.gauge("notify_queue_capacity", "Notification queue capacity")
	m.workerCount = m.gauge("notify_workers", "Notification delivery workers")
	m.deliveryLatency = m.histogram("notify_delivery_latency_milliseconds", "Time from dequeue to outbox append in milliseconds", m.histogramBuckets)

	m.storeQueryLatency = m.histogram("store_query_latency_milliseconds", "In-memory store query latency in milliseconds", m.histogramBuckets)

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint, method and type", "endpoint", "method", "error_type")
	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordStageChange counts a candidate moving to stage.
func RecordStageChange(stage string) { globalManager.stageChanges.WithLabelValues(stage).Inc() }

// RecordRejection counts a rejection.
func RecordRejection(notified bool) {
	label := "false"
	if notified {
		label = "true"
	}
	globalManager.rejections.WithLabelValues(label).Inc()
}

// UpdateCandidateTotal sets the tracked candidate gauge.
func UpdateCandidateTotal(n int) { globalManager.candidateTotal.Set(float64(n)) }

// RecordSimilarityRanking records one ranking run.
func RecordSimilarityRanking(latencyMs float64, poolSize int) {
	globalManager.similarityRankings.Inc()
	globalManager.similarityLatency.Observe(latencyMs)
	globalManager.similarityPoolSize.Observe(float64(poolSize))
}

// RecordWizardTransition counts a wizard action (next, back, submit, close).
func RecordWizardTransition(action string) {
	globalManager.wizardTransitions.WithLabelValues(action).Inc()
}

// RecordWizardSubmission counts a successful application submission.
func RecordWizardSubmission() { globalManager.wizardSubmissions.Inc() }

// RecordWizardDuplicate counts a submission that was already recorded.
func RecordWizardDuplicate() { globalManager.wizardDuplicates.Inc() }

// UpdateWizardSessions sets the open wizard session gauge.
func UpdateWizardSessions(n int) { globalManager.wizardSessions.Set(float64(n)) }

// RecordSettingChange counts a portal setting change.
func RecordSettingChange(section string) {
	globalManager.settingsChanges.WithLabelValues(section).Inc()
}

// RecordSettingsSave counts a portal settings save.
func RecordSettingsSave() { globalManager.settingsSaves.Inc() }

// RecordInterviewScheduled counts a scheduled interview.
func RecordInterviewScheduled() { globalManager.interviewScheduled.Inc() }

// RecordOfferTransition counts an offer moving to status.
func RecordOfferTransition(status string) {
	globalManager.offerTransitions.WithLabelValues(status).Inc()
}

// RecordNotificationQueued counts a queued notification.
func RecordNotificationQueued(kind string) { globalManager.notifyQueued.WithLabelValues(kind).Inc() }

// RecordNotificationDelivered counts a notification appended to the outbox.
func RecordNotificationDelivered(kind string, latencyMs float64) {
	globalManager.notifyDelivered.WithLabelValues(kind).Inc()
	globalManager.deliveryLatency.Observe(latencyMs)
}

// RecordNotificationDropped counts a notification that could not be queued or delivered.
func RecordNotificationDropped(reason string) {
	globalManager.notifyDropped.WithLabelValues(reason).Inc()
}

// UpdateQueueSize sets the notification queue length gauge.
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }

// UpdateQueueCapacity sets the notification queue capacity gauge.
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }

// UpdateWorkerCount sets the delivery worker gauge.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordStoreQueryLatency records an in-memory store query latency.
func RecordStoreQueryLatency(latencyMs float64) { globalManager.storeQueryLatency.Observe(latencyMs) }

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the registry every console metric is registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
