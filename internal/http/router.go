// Package httpapi wires the HTTP transport (Gin) to the repository, the
// view controller, and the analysis collaborator. It centralizes
// cross-cutting concerns: tracing, correlation IDs, structured logging,
// panic recovery, metrics, compression, rate limiting, CORS, and security
// headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logging is in place
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics and the /metrics endpoint
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/frotaops/go-fleet-backend/internal/app"
	"github.com/frotaops/go-fleet-backend/internal/config"
	"github.com/frotaops/go-fleet-backend/internal/http/handlers"
	"github.com/frotaops/go-fleet-backend/internal/http/middleware"
	"github.com/frotaops/go-fleet-backend/internal/repo"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine and mounts the public API under the configured base path.
func RegisterRoutes(r *gin.Engine, requests *repo.RequestRepo, analyzer handlers.Analyzer, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress JSON/CSV responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	r.Use(rl.Handler())

	// 9) CORS posture (allow all when no origins configured)
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "operator": cfg.DefaultOperator})
	})

	// Dependency injection: handlers ← repo/controller/collaborator
	ctrl := app.NewController(requests)
	h := handlers.New(requests, ctrl, analyzer)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Requests
		api.GET("/requests", h.ListRequests)
		api.POST("/requests", h.CreateRequest)
		api.GET("/requests/:id", h.GetRequest)
		api.PATCH("/requests/:id", h.UpdateRequest)
		api.DELETE("/requests/:id", h.DeleteRequest)

		// Exports
		api.GET("/requests/export/csv", h.ExportCSV)
		api.GET("/requests/:id/document", h.ExportDocument)

		// Aggregates and filter sources
		api.GET("/stats", h.GetStats)
		api.GET("/drivers", h.ListDrivers)

		// Analysis collaborator
		api.POST("/analysis", h.RunAnalysis)

		// View controller
		api.GET("/ui/state", h.GetUIState)
		api.POST("/ui/view", h.SelectView)
		api.POST("/ui/new", h.BeginCreate)
		api.POST("/ui/edit/:id", h.BeginEdit)
		api.POST("/ui/submit", h.SubmitForm)
		api.POST("/ui/cancel", h.CancelForm)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; oversized bodies error on downstream reads.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
