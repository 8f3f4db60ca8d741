// Package config provides application configuration management.
// It loads settings from environment variables (and an optional .env file)
// and provides defaults for the server, the chat assistant and the feedback form.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServiceName     string

	// TrustedProxies lists IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the peer address is the client address.
	TrustedProxies []string

	// Chat assistant providers, tried in order; the first with a key wins.
	LLMProviders []string
	GeminiAPIKey string
	GroqAPIKey   string
	OpenAIAPIKey string
	GeminiModel  string // empty = provider default
	GroqModel    string
	OpenAIModel  string

	Chat     ChatConfig
	Feedback FeedbackConfig

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string
}

// ChatConfig holds chat widget limits.
type ChatConfig struct {
	SessionTTL       time.Duration // idle sessions older than this are evicted
	MaxMessageLength int           // characters per user message
	RateBurst        float64       // per-client burst of chat sends
	RateRefill       float64       // tokens per second
}

// FeedbackConfig holds feedback form settings.
type FeedbackConfig struct {
	SubmitDelay time.Duration // simulated transmission time
}

// KnownProviders lists accepted FOTI_LLM_PROVIDERS values.
var KnownProviders = []string{"gemini", "groq", "openai"}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),
		ServiceName:     getEnv(EnvServiceName, "foti-web"),
		TrustedProxies:  getListEnv(EnvTrustedProxies, nil),

		LLMProviders: getListEnv(EnvLLMProviders, []string{"gemini"}),
		GeminiAPIKey: getEnv(EnvGeminiAPIKey, os.Getenv(EnvLegacyAPIKey)),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		OpenAIAPIKey: getEnv(EnvOpenAIAPIKey, ""),
		GeminiModel:  getEnv(EnvGeminiModel, ""),
		GroqModel:    getEnv(EnvGroqModel, ""),
		OpenAIModel:  getEnv(EnvOpenAIModel, ""),

		Chat: ChatConfig{
			SessionTTL:       getDurationEnv(EnvChatSessionTTL, 30*time.Minute),
			MaxMessageLength: getIntEnv(EnvChatMaxLength, 2000),
			RateBurst:        getFloatEnv(EnvChatRateBurst, 10),
			RateRefill:       getFloatEnv(EnvChatRateRefill, 0.2), // 1 per 5s
		},
		Feedback: FeedbackConfig{
			SubmitDelay: getDurationEnv(EnvFeedbackDelay, 1500*time.Millisecond),
		},

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration values and reports every problem at once.
// A missing AI credential is not an error: the chat assistant degrades to a
// fixed explanatory reply.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	for _, p := range c.TrustedProxies {
		if !isIPOrPrefix(p) {
			errs = append(errs, fmt.Errorf("%s: invalid IP or CIDR %q", EnvTrustedProxies, p))
		}
	}
	for _, p := range c.LLMProviders {
		if !isKnownProvider(p) {
			errs = append(errs, fmt.Errorf("%s: unknown provider %q", EnvLLMProviders, p))
		}
	}
	if err := c.Chat.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chat config: %w", err))
	}
	if c.Feedback.SubmitDelay < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvFeedbackDelay, c.Feedback.SubmitDelay))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}
	if c.MetricsAuthEnabled && c.MetricsPassword == "" {
		errs = append(errs, fmt.Errorf("%s is required when metrics auth is enabled", EnvMetricsPassword))
	}

	return errors.Join(errs...)
}

// Validate checks chat limits.
func (c ChatConfig) Validate() error {
	var errs []error
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvChatSessionTTL, c.SessionTTL))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvChatMaxLength, c.MaxMessageLength))
	}
	if c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %v", EnvChatRateBurst, c.RateBurst))
	}
	if c.RateRefill <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvChatRateRefill, c.RateRefill))
	}
	return errors.Join(errs...)
}

// HasLLMProvider returns true if at least one chat provider has a credential.
func (c *Config) HasLLMProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.OpenAIAPIKey != ""
}

func isIPOrPrefix(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}

func isKnownProvider(name string) bool {
	for _, p := range KnownProviders {
		if p == name {
			return true
		}
	}
	return false
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated variable, lowercasing and trimming entries.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
