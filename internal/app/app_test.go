package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foti-africa/foti-web/internal/config"
	"github.com/foti-africa/foti-web/internal/genai"
	"github.com/foti-africa/foti-web/internal/logger"
)

type echoProvider struct{}

func (echoProvider) Reply(_ context.Context, _ []genai.Message, text string) (string, error) {
	return "You said: " + text, nil
}
func (echoProvider) Provider() genai.Provider { return genai.ProviderGroq }
func (echoProvider) Close() error             { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		LogLevel:        "debug",
		ShutdownTimeout: time.Second,
		ServiceName:     "foti-web-test",
		Chat: config.ChatConfig{
			SessionTTL:       time.Hour,
			MaxMessageLength: 200,
			RateBurst:        5,
			RateRefill:       1,
		},
		MetricsUsername: "prometheus",
	}
}

// setupTestApp builds an Application without touching the network or stdout.
func setupTestApp(t *testing.T, cfg *config.Config, provider genai.ChatProvider) (*Application, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	app, err := newApplication(cfg, logger.NewWithWriter("debug", &buf), prometheus.NewRegistry(), provider)
	require.NoError(t, err)
	t.Cleanup(app.chatLimiter.Stop)
	return app, &buf
}

func serve(app *Application, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	return w
}

func TestLivenessCheck(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), nil)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "dev", body["version"])
}

func TestReadinessCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider genai.ChatProvider
		wantName string
		wantChat bool
	}{
		{"with provider", echoProvider{}, "groq", true},
		{"without provider", nil, "none", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app, _ := setupTestApp(t, testConfig(), tt.provider)

			w := serve(app, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			require.Equal(t, http.StatusOK, w.Code, "a missing AI credential does not make the site unready")

			var body struct {
				Status  string         `json:"status"`
				Catalog map[string]int `json:"catalog"`
				Chat    struct {
					Provider string `json:"provider"`
				} `json:"chat"`
				Features map[string]bool `json:"features"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "ready", body.Status)
			assert.Equal(t, map[string]int{"students": 3, "tours": 3, "papers": 3}, body.Catalog)
			assert.Equal(t, tt.wantName, body.Chat.Provider)
			assert.Equal(t, tt.wantChat, body.Features["chat"])
		})
	}
}

func TestRouter_ServesSite(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), nil)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/tours", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Tour Marketplace")
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "images.unsplash.com")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = serve(app, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(app, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestRouter_Gzip(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := serve(app, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRouter_ChatUnconfigured(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Messages []struct {
			Text    string `json:"text"`
			IsError bool   `json:"isError"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Messages, 2)
	assert.Equal(t, genai.ReplyUnconfigured, body.Messages[1].Text)
	assert.True(t, body.Messages[1].IsError)
}

func TestRouter_ChatWithProvider(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), echoProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You said: Hello")
	assert.Equal(t, 1, app.sessions.Len())
}

func postChat(app *Application, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return serve(app, req)
}

func TestRouter_ChatRateLimitIgnoresForwardedFor(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Chat.RateBurst = 2
	cfg.Chat.RateRefill = 0.001
	app, buf := setupTestApp(t, cfg, echoProvider{})

	var codes []int
	for i := range 5 {
		codes = append(codes, postChat(app, fmt.Sprintf("10.0.0.%d", i)).Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes, "every request comes from the same peer")
	assert.Equal(t, 1, app.chatLimiter.ActiveCount())
	assert.Contains(t, buf.String(), "HTTP request throttled")
	assert.Contains(t, buf.String(), "rate limit exceeded")
}

func TestRouter_ChatRateLimitTrustedProxy(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Chat.RateBurst = 1
	cfg.Chat.RateRefill = 0.001
	cfg.TrustedProxies = []string{"192.0.2.0/24"} // httptest peer address
	app, _ := setupTestApp(t, cfg, echoProvider{})

	assert.Equal(t, http.StatusOK, postChat(app, "198.51.100.1").Code)
	assert.Equal(t, http.StatusOK, postChat(app, "198.51.100.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, postChat(app, "198.51.100.1").Code)
	assert.Equal(t, 2, app.chatLimiter.ActiveCount())
}

func TestNewApplication_InvalidTrustedProxy(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.TrustedProxies = []string{"not-an-ip"}

	_, err := newApplication(cfg, logger.NewWithWriter("error", &bytes.Buffer{}), prometheus.NewRegistry(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trusted proxies")
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	app, buf := setupTestApp(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(app, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)

	w = serve(app, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36, "generated ids are UUIDs")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MetricsAuthEnabled = true
	cfg.MetricsPassword = "secret"
	app, _ := setupTestApp(t, cfg, nil)

	serve(app, httptest.NewRequest(http.MethodGet, "/careers", nil))

	w := serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prometheus", "secret")
	w = serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `foti_page_views_total{view="careers"} 1`)
}

func TestRecordGaugeMetrics(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, testConfig(), nil)

	app.sessions.GetOrCreate("")
	app.chatLimiter.Allow("192.0.2.1")
	app.recordGaugeMetrics()

	w := serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "foti_chat_sessions_active 1")
	assert.Contains(t, w.Body.String(), "foti_rate_limiter_keys 1")
}

func TestBuildChatConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LLMProviders = []string{"groq", "gemini"}
	cfg.GroqAPIKey = "gsk"
	cfg.GeminiModel = "gemini-2.5-pro"

	got := buildChatConfig(cfg)
	assert.Equal(t, []genai.Provider{genai.ProviderGroq, genai.ProviderGemini}, got.Providers)
	assert.Equal(t, "gsk", got.Groq.APIKey)
	assert.Equal(t, "gemini-2.5-pro", got.Gemini.Model)
	assert.Equal(t, []genai.Provider{genai.ProviderGroq}, got.ConfiguredProviders())

	cfg.LLMProviders = nil
	assert.Equal(t, genai.DefaultProviders, buildChatConfig(cfg).Providers)
}

func TestShutdown(t *testing.T) {
	t.Parallel()
	app, buf := setupTestApp(t, testConfig(), nil)

	require.NoError(t, app.shutdown())
	assert.Contains(t, buf.String(), "Shutdown complete")
}
