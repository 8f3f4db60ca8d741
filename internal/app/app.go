// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/foti-africa/foti-web/internal/buildinfo"
	"github.com/foti-africa/foti-web/internal/catalog"
	"github.com/foti-africa/foti-web/internal/chat"
	"github.com/foti-africa/foti-web/internal/config"
	"github.com/foti-africa/foti-web/internal/feedback"
	"github.com/foti-africa/foti-web/internal/genai"
	"github.com/foti-africa/foti-web/internal/logger"
	"github.com/foti-africa/foti-web/internal/metrics"
	"github.com/foti-africa/foti-web/internal/ratelimit"
	"github.com/foti-africa/foti-web/internal/sentry"
	"github.com/foti-africa/foti-web/internal/web"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg         *config.Config
	logger      *logger.Logger
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	catalog     *catalog.Catalog
	forwarder   *genai.Forwarder
	sessions    *chat.Store
	chatLimiter *ratelimit.KeyedLimiter
	handler     http.Handler
	server      *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", cfg.ServiceName).WithField("version", buildinfo.String())
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog calls (genai factory) go through the same handlers.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.String(),
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed, error reporting disabled")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error reporting enabled")
	}

	provider := genai.NewChatProvider(ctx, buildChatConfig(cfg))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	app, err := newApplication(cfg, log, registry, provider)
	if err != nil {
		return nil, err
	}

	log.WithField("chat_provider", app.forwarder.ProviderName()).Info("Initialization complete")
	return app, nil
}

// newApplication wires every component around an existing logger, registry
// and chat provider. provider may be nil.
func newApplication(cfg *config.Config, log *logger.Logger, registry *prometheus.Registry, provider genai.ChatProvider) (*Application, error) {
	m := metrics.New(registry)
	cat := catalog.Default()

	forwarder := genai.NewForwarder(provider, m, log)
	if !forwarder.Enabled() {
		log.Warn("No AI credential configured, chat assistant answers with a fixed notice")
	}

	sessions := chat.NewStore(cfg.Chat.SessionTTL, m.SetChatSessions)
	chatLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "chat",
		Burst:         cfg.Chat.RateBurst,
		RefillRate:    cfg.Chat.RateRefill,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		Metrics:       m,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		chatLimiter.Stop()
		return nil, fmt.Errorf("templates: %w", err)
	}

	site := web.NewHandler(web.Options{
		Catalog:          cat,
		Assistant:        forwarder,
		ChatEnabled:      forwarder.Enabled(),
		Sessions:         sessions,
		Feedback:         feedback.NewService(cfg.Feedback.SubmitDelay, m, log),
		Limiter:          chatLimiter,
		Metrics:          m,
		Logger:           log,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		SessionTTL:       cfg.Chat.SessionTTL,
	})

	app := &Application{
		cfg:         cfg,
		logger:      log,
		metrics:     m,
		registry:    registry,
		catalog:     cat,
		forwarder:   forwarder,
		sessions:    sessions,
		chatLimiter: chatLimiter,
	}
	handler, err := app.newRouter(renderer, site)
	if err != nil {
		chatLimiter.Stop()
		return nil, err
	}
	app.handler = handler
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.handler,
		ReadHeaderTimeout: config.HTTPRead,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}
	return app, nil
}

// buildChatConfig maps application config onto provider settings.
func buildChatConfig(cfg *config.Config) genai.Config {
	chatCfg := genai.Config{
		Providers: genai.DefaultProviders,
		Gemini:    genai.ProviderConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
		Groq:      genai.ProviderConfig{APIKey: cfg.GroqAPIKey, Model: cfg.GroqModel},
		OpenAI:    genai.ProviderConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
	}

	if len(cfg.LLMProviders) > 0 {
		providers := make([]genai.Provider, 0, len(cfg.LLMProviders))
		for _, p := range cfg.LLMProviders {
			providers = append(providers, genai.Provider(p))
		}
		chatCfg.Providers = providers
	}
	return chatCfg
}

// Run starts the HTTP server and background jobs and blocks until
// SIGINT/SIGTERM or a fatal server error.
//
// Shutdown order:
//  1. Cancel the jobs context and wait for background jobs
//  2. Stop accepting requests and drain in-flight ones
//  3. Release the rate limiter and chat provider
//  4. Flush Sentry and the logger
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs, jobsCtx := errgroup.WithContext(ctx)
	a.startBackgroundJobs(jobsCtx, jobs)

	serverErr := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err, ok := <-serverErr:
		if ok {
			a.logger.WithError(err).Error("HTTP server error")
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	cancel()
	a.stopBackgroundJobs(jobs)

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// startBackgroundJobs starts every periodic job on g.
func (a *Application) startBackgroundJobs(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		a.logger.Debug("Chat session sweeper started")
		defer a.logger.Debug("Chat session sweeper stopped")
		return a.sessions.Run(ctx, config.SessionSweepInterval)
	})
	g.Go(func() error {
		a.updateGaugeMetrics(ctx)
		return nil
	})
}

func (a *Application) stopBackgroundJobs(g *errgroup.Group) {
	a.logger.Info("Waiting for background jobs to finish...")
	start := time.Now()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			a.logger.WithError(err).Warn("Background job ended with error")
		}
		a.logger.WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("All background jobs completed")
	case <-time.After(config.BackgroundJobsStop):
		a.logger.Warn("Timeout waiting for background jobs to stop")
	}
}

// updateGaugeMetrics periodically refreshes gauges that are not updated
// on every change.
func (a *Application) updateGaugeMetrics(ctx context.Context) {
	a.logger.Debug("Gauge metrics job started")
	defer a.logger.Debug("Gauge metrics job stopped")

	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.recordGaugeMetrics()
		}
	}
}

func (a *Application) recordGaugeMetrics() {
	a.metrics.SetChatSessions(a.sessions.Len())
	a.metrics.SetRateLimiterKeys(a.chatLimiter.ActiveCount())
}

// shutdown stops the HTTP server and releases resources. It must run
// after background jobs have stopped.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}

	a.logger.Info("Closing resources...")
	a.chatLimiter.Stop()
	if err := a.forwarder.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "chat_provider").Error("Component close error")
	}

	if sentry.IsEnabled() && !sentry.Flush(config.SentryFlush) {
		a.logger.Warn("Sentry flush timed out")
	}

	a.logger.Info("Shutdown complete")
	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		// The async sink is gone; stdout still works.
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	return errors.Join(errs...)
}
