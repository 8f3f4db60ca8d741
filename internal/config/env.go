// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "FOTI_PORT"
	EnvLogLevel        = "FOTI_LOG_LEVEL"
	EnvShutdownTimeout = "FOTI_SHUTDOWN_TIMEOUT"
	EnvServiceName     = "FOTI_SERVICE_NAME"
	EnvTrustedProxies  = "FOTI_TRUSTED_PROXIES"

	// Chat assistant
	EnvLLMProviders  = "FOTI_LLM_PROVIDERS"
	EnvGeminiAPIKey  = "FOTI_GEMINI_API_KEY"
	EnvLegacyAPIKey  = "API_KEY"
	EnvGroqAPIKey    = "FOTI_GROQ_API_KEY"
	EnvOpenAIAPIKey  = "FOTI_OPENAI_API_KEY"
	EnvGeminiModel   = "FOTI_GEMINI_MODEL"
	EnvGroqModel     = "FOTI_GROQ_MODEL"
	EnvOpenAIModel   = "FOTI_OPENAI_MODEL"
	EnvChatMaxLength = "FOTI_CHAT_MAX_MESSAGE_LENGTH"

	// Chat sessions and limits
	EnvChatSessionTTL = "FOTI_CHAT_SESSION_TTL"
	EnvChatRateBurst  = "FOTI_CHAT_RATE_BURST"
	EnvChatRateRefill = "FOTI_CHAT_RATE_REFILL"

	// Feedback
	EnvFeedbackDelay = "FOTI_FEEDBACK_SUBMIT_DELAY"

	// Sentry Feature
	EnvSentryDSN         = "FOTI_SENTRY_DSN"
	EnvSentryEnvironment = "FOTI_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "FOTI_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "FOTI_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "FOTI_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "FOTI_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "FOTI_METRICS_USERNAME"
	EnvMetricsPassword    = "FOTI_METRICS_PASSWORD"
)
