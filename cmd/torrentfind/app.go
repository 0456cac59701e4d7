package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/torrentfind/internal/config"
	"github.com/amaumene/torrentfind/internal/constants"
	"github.com/amaumene/torrentfind/internal/handlers"
	"github.com/amaumene/torrentfind/internal/middleware"
	"github.com/amaumene/torrentfind/internal/services"
	"github.com/amaumene/torrentfind/pkg/logger"
)

var (
	Logger           logger.Logger
	serviceContainer *services.Container
	handler          *handlers.Handler
)

func InitializeLogger(cfg *config.Config) {
	Logger = logger.NewWithConfig(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
}

func InitializeServices(cfg *config.Config) {
	serviceContainer = services.NewContainer(cfg, Logger)
	handler = handlers.New(serviceContainer, cfg)

	Logger.Infof("[App] services initialized successfully")
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.APIKey(cfg.APIKey, Logger, "/health"))
	r.Use(middleware.Gzip(Logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	handler.RegisterRoutes(r)
	return r
}

func NewServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}
}
