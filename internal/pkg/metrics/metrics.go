package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	SubmissionsTotal   *prometheus.CounterVec
	AttachmentRejected *prometheus.CounterVec
	PreviewsActive     prometheus.Gauge
	FormsActive        prometheus.Gauge
}

// New creates the collectors and registers them together with the Go runtime collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hallbook_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hallbook_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hallbook_submissions_total",
			Help: "Booking form submissions by outcome",
		}, []string{"outcome"}),

		AttachmentRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hallbook_attachment_rejected_total",
			Help: "Rejected attachment uploads by reason",
		}, []string{"reason"}),

		PreviewsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hallbook_previews_active",
			Help: "Attachment previews currently held",
		}),

		FormsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hallbook_forms_active",
			Help: "Mounted booking forms",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SubmissionCompleted counts a submission that reached the given outcome.
func (m *Metrics) SubmissionCompleted(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// AttachmentRejectedFor counts a rejected upload.
func (m *Metrics) AttachmentRejectedFor(reason string) {
	m.AttachmentRejected.WithLabelValues(reason).Inc()
}

// PreviewAcquired and PreviewReleased track held previews.
func (m *Metrics) PreviewAcquired() { m.PreviewsActive.Inc() }

func (m *Metrics) PreviewReleased() { m.PreviewsActive.Dec() }

// FormMounted and FormDiscarded track mounted forms.
func (m *Metrics) FormMounted() { m.FormsActive.Inc() }

func (m *Metrics) FormDiscarded() { m.FormsActive.Dec() }
