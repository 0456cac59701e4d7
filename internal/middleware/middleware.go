// Package middleware holds the gin middleware shared by all routes.
package middleware

import (
	"compress/gzip"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/security"
)

// APIKeyHeader carries the key when the API is protected.
const APIKeyHeader = "X-API-Key"

type gzipResponseWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzipWriter.Write([]byte(s))
}

// WriteHeader drops any length set before compression.
func (w *gzipResponseWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func Gzip(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		gzipWriter := gzip.NewWriter(c.Writer)
		defer func() {
			if err := gzipWriter.Close(); err != nil {
				log.Errorf("[HTTP] failed to close gzip writer: %v", err)
			}
		}()

		c.Writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzipWriter:     gzipWriter,
		}

		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+APIKeyHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// APIKey rejects requests whose X-API-Key header or apikey query parameter
// does not match key. An empty key disables the check. Paths in skip are
// always allowed.
func APIKey(key string, log logger.Logger, skip ...string) gin.HandlerFunc {
	validator := security.NewAPIKeyValidator()
	open := make(map[string]bool, len(skip))
	for _, p := range skip {
		open[p] = true
	}

	return func(c *gin.Context) {
		if key == "" || open[c.Request.URL.Path] {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			provided = c.Query("apikey")
		}
		provided = strings.TrimSpace(provided)

		if !validator.SecureCompare(provided, key) {
			log.Warnf("[HTTP] rejected API key %s from %s",
				validator.MaskAPIKey(validator.SanitizeAPIKey(provided)), c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key", "type": "UNAUTHORIZED"})
			return
		}

		c.Next()
	}
}

// Timeout bounds the request context so upstream calls are abandoned once
// the deadline passes.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		switch {
		case statusCode >= 500:
			log.Errorf("[HTTP] %s %s %d %v %s", clientIP, method, statusCode, latency, path)
		case statusCode >= 400:
			log.Warnf("[HTTP] %s %s %d %v %s", clientIP, method, statusCode, latency, path)
		default:
			log.Infof("[HTTP] %s %s %d %v %s", clientIP, method, statusCode, latency, path)
		}
	}
}
