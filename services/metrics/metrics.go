// Package metrics exposes Prometheus metrics for the scheduling engine and
// the HTTP API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the custom prometheus registry for the application
var Registry = prometheus.NewRegistry()

// factory registers metrics to the custom Registry directly
var factory = promauto.With(Registry)

// DraftSessionsGenerated counts draft sessions created by the weekly generator.
var DraftSessionsGenerated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "draft_sessions_generated_total",
	Help:      "Total draft sessions created by the weekly draft generator",
})

// SessionsPublished counts sessions promoted from Draft to Published.
var SessionsPublished = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "sessions_published_total",
	Help:      "Total sessions promoted from Draft to Published",
})

// ScheduleEntriesUploaded counts batch schedule entries created by bulk uploads.
var ScheduleEntriesUploaded = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "schedule_entries_uploaded_total",
	Help:      "Total batch schedule entries created via bulk upload",
})

// RequestsTotal counts HTTP requests by method, path and status.
var RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by method, path and status code",
}, []string{"method", "path", "status"})

// RequestDurationSeconds tracks HTTP request latency.
var RequestDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
