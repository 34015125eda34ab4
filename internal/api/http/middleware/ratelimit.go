package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

// RateLimit bounds requests per client IP. A nil limiter lets every request through.
type RateLimit struct {
	limiter model.SignInLimiter
	logger  *logger.Logger
}

// NewRateLimit creates a new RateLimit middleware.
func NewRateLimit(limiter model.SignInLimiter, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, logger: logger}
}

// Handle answers 429 with Retry-After once the client exceeds the limit.
// Limiter failures let the request through.
func (m *RateLimit) Handle(c *gin.Context) {
	if m.limiter == nil {
		c.Next()
		return
	}

	ip := c.ClientIP()
	allowed, retryAfter, err := m.limiter.Allow(c.Request.Context(), ip)
	if err != nil {
		m.logger.Warn("RateLimit middleware: limiter unavailable",
			"ip", ip,
			"error", err.Error())
		c.Next()
		return
	}

	if !allowed {
		m.logger.Info("RateLimit middleware: request throttled",
			"ip", ip,
			"path", c.Request.URL.Path)
		seconds := int(math.Ceil(retryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	c.Next()
}
