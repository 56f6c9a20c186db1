// Package api serves the path-finding engine over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Controller registers a group of routes.
type Controller interface {
	Register(*gin.RouterGroup)
}

// Router manages the HTTP server and its controllers.
type Router struct {
	addr        string
	baseURL     string
	controllers []Controller
	logger      *log.Logger
	engine      *gin.Engine
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	GinMode     string // debug, release or test; empty keeps gin's current mode
	Controllers []Controller
	Logger      *log.Logger
}

// NewRouter creates a new Router and registers every controller under
// <BaseURL>/v1.
func NewRouter(cfg Config) *Router {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &Router{
		addr:        cfg.Addr,
		baseURL:     cfg.BaseURL,
		controllers: cfg.Controllers,
		logger:      logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group(r.baseURL).Group("/v1")
	{
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}

	r.engine = engine
	return r
}

// Handler returns the HTTP handler serving all routes.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              r.addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("starting HTTP API", "address", r.addr, "base", r.baseURL+"/v1")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api: serving: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request once it completes.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			logger.Warn("request", append(fields, "error", c.Errors.String())...)
			return
		}
		logger.Info("request", fields...)
	}
}
