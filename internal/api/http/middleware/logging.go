package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/baasproxy/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()
	log := l.logger.With(
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(RequestIDKey))
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		log = log.With("trace_id", sc.TraceID().String())
	}

	log.Debug("HTTP request started",
		"start_time", start.Format(time.RFC3339))

	c.Next()

	status := c.Writer.Status()
	log.Info("HTTP request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"status", status)

	if status >= 500 {
		log.Error("HTTP request failed",
			"status", status,
			"errors", c.Errors.String())
	}
}
