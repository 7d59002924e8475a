package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	requestsTotal           *prometheus.CounterVec
	latencySeconds          *prometheus.HistogramVec
	errorsTotal             *prometheus.CounterVec
	formsSubmittedTotal     prometheus.Counter
	formTransitionsTotal    *prometheus.CounterVec
	notificationsPublished  *prometheus.CounterVec
	sseClientsActive        prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradtrack_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gradtrack_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradtrack_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		formsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gradtrack_forms_submitted_total",
			Help: "Total number of progress forms submitted by students.",
		})

		formTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradtrack_form_transitions_total",
			Help: "Total number of workflow transitions applied to progress forms.",
		}, []string{"action", "role"})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradtrack_notifications_published_total",
			Help: "Total number of notifications published, by type.",
		}, []string{"type"})

		sseClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradtrack_sse_clients_active",
			Help: "Number of currently connected notification stream clients.",
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			formsSubmittedTotal,
			formTransitionsTotal,
			notificationsPublished,
			sseClientsActive,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// FormsSubmitted exposes the counter for submitted progress forms.
func FormsSubmitted() prometheus.Counter {
	RegisterMetrics()
	return formsSubmittedTotal
}

// FormTransitions exposes the counter for workflow transitions.
func FormTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return formTransitionsTotal
}

// NotificationsPublishedTotal exposes the counter for published notifications.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// SSEClientsActive exposes the gauge for connected stream clients.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActive
}
