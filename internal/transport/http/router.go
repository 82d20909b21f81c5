package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// Handlers groups everything the router mounts.
type Handlers struct {
	Imports *ImportHandler
	Prices  *PriceHandler
	Events  *EventsHandler
	Health  map[string]HealthCheck
}

// NewRouter returns a gin engine with all routes mounted.
func NewRouter(h Handlers, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestLogger(), recovery())

	r.GET("/healthz", health(h.Health))

	v1 := r.Group("/api/v1")
	{
		imports := v1.Group("/price-imports")
		imports.POST("", h.Imports.Upload)
		imports.GET("/template", h.Imports.Template)
		imports.GET("/logs", h.Imports.Logs)
		imports.GET("/:upload_id/skipped", h.Imports.Skipped)

		v1.GET("/products/:sku/price", h.Prices.Get)
		v1.GET("/events", h.Events.List)
	}
	return r
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				body[name] = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "connected"
		}
		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}

// requestLogger logs each request with method, path, status and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// recovery turns panics into 500 responses without exposing internals.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: ErrorInfo{Code: "INTERNAL", Message: "internal server error"}})
			}
		}()
		c.Next()
	}
}
