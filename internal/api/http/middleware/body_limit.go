package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at maxBytes. Zero or less disables the cap.
type BodyLimit struct {
	maxBytes int64
}

// NewBodyLimit creates a new BodyLimit middleware.
func NewBodyLimit(maxBytes int64) *BodyLimit {
	return &BodyLimit{maxBytes: maxBytes}
}

// Handle rejects a declared oversized body with 413 and truncates reads of
// undeclared ones, so binding fails instead of buffering the rest.
func (m *BodyLimit) Handle(c *gin.Context) {
	if m.maxBytes <= 0 {
		c.Next()
		return
	}

	if c.Request.ContentLength > m.maxBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxBytes)
	c.Next()
}
