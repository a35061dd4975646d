package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-publishing-api/internal/metrics"
	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether the storage backend is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RouterDeps are the collaborators the router wires into handlers
type RouterDeps struct {
	Services *service.Services
	Sessions *session.Manager
	Health   HealthChecker
	Metrics  *metrics.Metrics
}

// NewRouter creates and configures the Gin router. The returned handler
// loads and saves the session around every request.
func NewRouter(deps RouterDeps, log zerolog.Logger) http.Handler {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(deps.Metrics))

	// Handlers
	authHandler := NewAuthHandler(deps.Services, deps.Metrics, log)
	postHandler := NewPostHandler(deps.Services, deps.Metrics, log)

	gate := session.NewGate(deps.Sessions)
	anonymousOnly := guardPipeline(requireAnonymous(gate))
	authenticated := guardPipeline(requireAuthenticated(gate))

	// Operational endpoints
	router.GET("/health", healthCheck(deps.Health))
	router.GET("/stats", statsHandler(deps.Services, log))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Credential flow
	router.GET("/login", anonymousOnly, authHandler.LoginForm)
	router.POST("/login", anonymousOnly, authHandler.Login)
	router.GET("/register", anonymousOnly, authHandler.RegisterForm)
	router.POST("/register", anonymousOnly, authHandler.Register)
	router.GET("/logout", authenticated, authHandler.Logout)

	// Content
	posts := router.Group("/posts", authenticated)
	{
		posts.GET("", postHandler.ListPosts)
		posts.POST("", postHandler.CreatePost)
		posts.GET("/:id", postHandler.GetPost)
		posts.POST("/:id", postHandler.AddComment)
	}

	return deps.Sessions.LoadAndSave(router)
}

// healthCheck returns the health status
func healthCheck(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		if err := checker.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   "blog-publishing-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-publishing-api",
		})
	}
}

// statsHandler returns row counts
func statsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.Stats.Stats(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to collect stats")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  stats,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// metricsMiddleware records request latency by route pattern
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
