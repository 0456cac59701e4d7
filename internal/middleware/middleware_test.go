package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/torrentfind/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGzip(t *testing.T) {
	r := gin.New()
	r.Use(Gzip(logger.Nop()))
	r.GET("/data", func(c *gin.Context) { c.String(http.StatusOK, "hello world") })

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(body))
}

func TestGzip_NotAccepted(t *testing.T) {
	r := gin.New()
	r.Use(Gzip(logger.Nop()))
	r.GET("/data", func(c *gin.Context) { c.String(http.StatusOK, "plain") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", w.Body.String())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deadline", nil))
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}

func TestLogger(t *testing.T) {
	r := gin.New()
	r.Use(Logger(logger.Nop()))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing?q=x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIKey(t *testing.T) {
	r := gin.New()
	r.Use(APIKey("s3cret-key", logger.Nop(), "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set(APIKeyHeader, "s3cret-key")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?apikey=s3cret-key", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKey_RejectsAlteredKey(t *testing.T) {
	r := gin.New()
	r.Use(APIKey("abcdefgh12", logger.Nop()))
	r.GET("/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, presented := range []string{"abc!!de.fgh/12", "abcdefgh12!", "abcdefgh1", "ABCDEFGH12"} {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.Header.Set(APIKeyHeader, presented)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, presented)
	}

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set(APIKeyHeader, " abcdefgh12 ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKey_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(APIKey("", logger.Nop()))
	r.GET("/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
