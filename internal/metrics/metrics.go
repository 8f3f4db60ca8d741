// Package metrics defines the Prometheus metrics exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Page metrics
	PageViewsTotal *prometheus.CounterVec

	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	ChatSessionsActive  prometheus.Gauge

	// Feedback metrics
	FeedbackSubmissionsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped   *prometheus.CounterVec
	RateLimiterKeysTotal prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		PageViewsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foti_page_views_total",
				Help: "Total number of rendered pages by view",
			},
			[]string{"view"}, // view: home, tours, research, careers, students, feedback
		),

		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foti_chat_requests_total",
				Help: "Total number of chat messages forwarded by provider and outcome",
			},
			[]string{"provider", "outcome"}, // outcome: success, error, empty, unconfigured
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foti_chat_duration_seconds",
				Help:    "Chat forwarding duration in seconds by provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),

		ChatSessionsActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "foti_chat_sessions_active",
				Help: "Number of chat sessions held in memory",
			},
		),

		FeedbackSubmissionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foti_feedback_submissions_total",
				Help: "Total number of feedback submissions by type and status",
			},
			[]string{"type", "status"}, // status: success, invalid, canceled
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foti_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: not_found, rate_limit, too_long, bad_request
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foti_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter"},
		),

		RateLimiterKeysTotal: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "foti_rate_limiter_keys",
				Help: "Number of client keys tracked by the rate limiter",
			},
		),
	}
}

// RecordPageView records a rendered view
func (m *Metrics) RecordPageView(view string) {
	m.PageViewsTotal.WithLabelValues(view).Inc()
}

// RecordChat records a forwarded chat message
func (m *Metrics) RecordChat(provider, outcome string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(provider, outcome).Inc()
	m.ChatDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// SetChatSessions sets the number of live chat sessions
func (m *Metrics) SetChatSessions(count int) {
	m.ChatSessionsActive.Set(float64(count))
}

// RecordFeedback records a feedback submission attempt
func (m *Metrics) RecordFeedback(feedbackType, status string) {
	m.FeedbackSubmissionsTotal.WithLabelValues(feedbackType, status).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}

// SetRateLimiterKeys sets the number of tracked rate limiter keys
func (m *Metrics) SetRateLimiterKeys(count int) {
	m.RateLimiterKeysTotal.Set(float64(count))
}
