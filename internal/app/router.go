package app

import (
	"context"
	"fmt"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foti-africa/foti-web/internal/buildinfo"
	"github.com/foti-africa/foti-web/internal/config"
	"github.com/foti-africa/foti-web/internal/sentry"
	"github.com/foti-africa/foti-web/internal/web"
)

// newRouter builds the gin engine serving the site, probes and metrics,
// wrapped in gzip compression.
func (a *Application) newRouter(renderer *web.Renderer, site *web.Handler) (http.Handler, error) {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// ClientIP keys the chat rate limiter, so forwarding headers are honored
	// only from configured proxies. nil trusts none.
	if err := router.SetTrustedProxies(a.cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.HTMLRender = renderer
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		// Repanic so gin.Recovery still answers 500 after the event is captured.
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(a.logger))

	router.StaticFS("/static", http.FS(web.StaticFS()))

	router.GET("/livez", a.livenessCheck)
	router.HEAD("/livez", a.livenessCheck)
	router.GET("/readyz", a.readinessCheck)
	router.HEAD("/readyz", a.readinessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsAuthEnabled, a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	site.Register(router)
	router.NoRoute(site.NotFound)

	return gzhttp.GzipHandler(router), nil
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"version": buildinfo.String(),
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"chat":          a.forwarder.Enabled(),
		"error_reports": sentry.IsEnabled(),
	}
}

// readinessCheck reports the catalog and chat assistant state. The site
// serves without an AI provider, so a missing one is not a failure.
func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessCheckTimeout)
	defer cancel()

	students, tours, papers := a.catalog.Counts()
	if tours == 0 {
		a.logger.WarnContext(ctx, "Readiness check failed: catalog is empty")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "catalog empty",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"catalog": gin.H{
			"students": students,
			"tours":    tours,
			"papers":   papers,
		},
		"chat": gin.H{
			"provider": a.forwarder.ProviderName(),
			"sessions": a.sessions.Len(),
		},
		"features": a.getFeatures(),
	})
}
