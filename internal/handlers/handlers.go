// Package handlers implements the HTTP search API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/torrentfind/internal/config"
	"github.com/amaumene/torrentfind/internal/constants"
	"github.com/amaumene/torrentfind/internal/services"
	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/torrentsearch"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/sorter"
)

// Handler handles HTTP requests for the search API.
type Handler struct {
	config *config.Config
	search *torrentsearch.TorrentSearch
	sorter *sorter.TorrentSorter
	logger logger.Logger
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, cfg *config.Config) *Handler {
	log := services.Logger
	if log == nil {
		log = logger.Nop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{
		config: cfg,
		search: services.TorrentSearch,
		sorter: sorter.NewTorrentSorter(),
		logger: log,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)
	r.GET("/providers", h.handleProviders)
	r.GET("/search", h.handleSearchAll)
	r.GET("/search/:provider", h.handleSearch)
}

// handleHealth serves GET /health[?providers=true]. Probing providers is
// opt-in since it reaches every upstream site.
func (h *Handler) handleHealth(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"name":    constants.AppName,
		"version": constants.AppVersion,
	}

	if probe, _ := strconv.ParseBool(c.Query("providers")); probe {
		statuses, healthy := h.providerHealth(c)
		body["providers"] = statuses
		if !healthy {
			body["status"] = "degraded"
		}
	}

	c.JSON(http.StatusOK, body)
}

func (h *Handler) providerHealth(c *gin.Context) (map[models.ProviderKind]string, bool) {
	results := h.search.Health(c.Request.Context())
	statuses := make(map[models.ProviderKind]string, len(models.AllProviders))
	healthy := true

	for _, kind := range models.AllProviders {
		err, registered := results[kind]
		switch {
		case !h.config.ProviderEnabled(kind):
			statuses[kind] = "disabled"
		case !registered:
			statuses[kind] = "unavailable"
		case err != nil:
			statuses[kind] = err.Error()
			healthy = false
		default:
			statuses[kind] = "ok"
		}
	}
	return statuses, healthy
}

func (h *Handler) handleProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.search.Providers()})
}
