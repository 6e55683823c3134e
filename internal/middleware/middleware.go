// Package middleware holds the gin middleware shared by every route group
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models/dto"
)

// RequestIDHeader carries the id of a request in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request with its status and latency
func RequestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set("requestID", requestID)

		c.Next()

		status := c.Writer.Status()
		event := lgr.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = lgr.Error()
		case status >= http.StatusBadRequest:
			event = lgr.Warn()
		}

		event.
			Str("requestID", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Msg("Request handled")
	}
}

// Recovery turns a panic into a 500 error envelope
func Recovery(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				lgr.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic")
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
					WithSeverity(dto.ErrorSeverityCritical)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			}
		}()
		c.Next()
	}
}

// CORS allows the portal origins to call the API with credentials. The session lives
// in a cookie, so a wildcard origin is never echoed.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+RequestIDHeader)
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
