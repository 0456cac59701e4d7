package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaumene/torrentfind/internal/config"
)

func TestRouterServesHealth(t *testing.T) {
	cfg := config.Default()
	InitializeLogger(cfg)
	InitializeServices(cfg)

	router := NewRouter(cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search/yts", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewServerAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Port = "8123"

	srv := NewServer(cfg, http.NewServeMux())
	assert.Equal(t, ":8123", srv.Addr)
}
