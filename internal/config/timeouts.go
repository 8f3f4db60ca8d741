package config

import "time"

// HTTP server timeouts
const (
	// HTTPRead bounds reading a request; forms and chat payloads are small.
	HTTPRead = 10 * time.Second

	// HTTPWrite must cover a full chat round trip to the AI provider plus
	// the simulated feedback delay.
	HTTPWrite = 90 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second
)

// Background job intervals
const (
	// SessionSweepInterval is how often idle chat sessions are evicted.
	SessionSweepInterval = time.Minute

	// RateLimiterCleanupInterval is how often idle per-client limiters are removed.
	RateLimiterCleanupInterval = 5 * time.Minute

	// MetricsUpdateInterval is how often gauge metrics are refreshed.
	MetricsUpdateInterval = 30 * time.Second
)

// Probe and shutdown
const (
	// ReadinessCheckTimeout bounds the /readyz handler.
	ReadinessCheckTimeout = 3 * time.Second

	// BackgroundJobsStop bounds waiting for background jobs at shutdown.
	BackgroundJobsStop = 5 * time.Second

	// SentryFlush bounds flushing buffered Sentry events at shutdown.
	SentryFlush = 2 * time.Second
)
