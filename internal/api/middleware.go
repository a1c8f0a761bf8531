package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or "-".
func RequestIDFrom(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return "-"
}

// Metrics records request latency per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(c.Request.Method, route))
		c.Next()
		timer.ObserveDuration()
	}
}
