// Package services provides dependency injection container for application services.
package services

import (
	"net/http"

	"github.com/amaumene/torrentfind/internal/config"
	"github.com/amaumene/torrentfind/pkg/httputil"
	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/ratelimiter"
	"github.com/amaumene/torrentfind/pkg/torrentsearch"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/providers"
)

// Container holds all application services for dependency injection.
type Container struct {
	Config        *config.Config
	Logger        logger.Logger
	HTTPClient    *http.Client
	TorrentSearch *torrentsearch.TorrentSearch
}

// NewContainer builds one client and adapter per enabled provider.
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	if log == nil {
		log = logger.Nop()
	}
	httpClient := httputil.NewHTTPClient(cfg.HTTPTimeout)

	search := torrentsearch.New(log)
	for _, kind := range cfg.Providers() {
		adapter := newAdapter(kind, cfg, httpClient, log)
		if adapter == nil {
			log.Warnf("[Services] no adapter for provider %s", kind)
			continue
		}
		search.RegisterProvider(adapter)
	}

	log.Infof("[Services] search initialized with providers %v", search.Providers())

	return &Container{
		Config:        cfg,
		Logger:        log,
		HTTPClient:    httpClient,
		TorrentSearch: search,
	}
}

func newAdapter(kind models.ProviderKind, cfg *config.Config, httpClient *http.Client, log logger.Logger) providers.Adapter {
	limiter := func() ratelimiter.RateLimiter {
		return ratelimiter.NewTokenBucket(cfg.RateLimit.Burst, cfg.RateLimit.RequestsPerSecond)
	}

	switch kind {
	case models.ProviderYTS:
		client := providers.NewYTSClient(cfg.YTS.BaseURL, cfg.YTS.Limit, httpClient, log)
		client.SetRateLimiter(limiter())
		return providers.NewYTSAdapter(client, cfg.YTS.MagnetLinks, log)
	case models.ProviderLeetx:
		client := providers.NewLeetxClient(cfg.Leetx.BaseURL, cfg.Leetx.DetailConcurrency, httpClient, log)
		client.SetRateLimiter(limiter())
		return providers.NewFreeTextAdapter(kind, client, log)
	case models.ProviderApiBay:
		client := providers.NewApiBayClient(cfg.ApiBay.BaseURL, httpClient, log)
		client.SetRateLimiter(limiter())
		return providers.NewFreeTextAdapter(kind, client, log)
	case models.ProviderTorrentsCSV:
		client := providers.NewTorrentsCSVClient(cfg.TorrentsCSV.BaseURL, cfg.TorrentsCSV.Size, httpClient, log)
		client.SetRateLimiter(limiter())
		return providers.NewFreeTextAdapter(kind, client, log)
	default:
		return nil
	}
}
