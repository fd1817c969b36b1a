package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module: provider call
// outcomes, status transitions and webhook deliveries.
type Metrics struct {
	ProviderRequests      *prometheus.CounterVec
	ProviderDuration      *prometheus.HistogramVec
	ProviderBreakerEvents *prometheus.CounterVec
	Initiations           *prometheus.CounterVec
	StatusTransitions     *prometheus.CounterVec
	RejectedTransitions   prometheus.Counter
	WebhooksReceived      *prometheus.CounterVec
	EventPublishFailures  prometheus.Counter
}

// New registers all verification metrics against reg (nil means the default
// registry). Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ProviderRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_provider_requests_total",
			Help: "Provider API calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		ProviderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycgate_provider_request_duration_seconds",
			Help:    "Provider API call latency including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		ProviderBreakerEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_provider_breaker_transitions_total",
			Help: "Provider circuit breaker state changes",
		}, []string{"state"}),
		Initiations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_verification_initiations_total",
			Help: "Verification initiations by path (created or reused applicant)",
		}, []string{"path"}),
		StatusTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_verification_status_updates_total",
			Help: "Applied status updates by source and resulting status",
		}, []string{"source", "status"}),
		RejectedTransitions: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_verification_rejected_transitions_total",
			Help: "Status updates dropped because the state machine disallows the edge",
		}),
		WebhooksReceived: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_webhooks_received_total",
			Help: "Webhook deliveries by event type and outcome",
		}, []string{"type", "outcome"}),
		EventPublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_status_event_publish_failures_total",
			Help: "Status-change events that could not be published",
		}),
	}
}

// ObserveProviderCall records one logical provider operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveProviderCall(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementBreaker(state string) {
	if m == nil {
		return
	}
	m.ProviderBreakerEvents.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementInitiation(path string) {
	if m == nil {
		return
	}
	m.Initiations.WithLabelValues(path).Inc()
}

func (m *Metrics) IncrementTransition(source, status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(source, status).Inc()
}

func (m *Metrics) IncrementRejectedTransition() {
	if m == nil {
		return
	}
	m.RejectedTransitions.Inc()
}

func (m *Metrics) IncrementWebhook(eventType, outcome string) {
	if m == nil {
		return
	}
	m.WebhooksReceived.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) IncrementPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}
