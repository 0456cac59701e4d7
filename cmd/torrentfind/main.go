package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/torrentfind/internal/config"
	"github.com/amaumene/torrentfind/internal/constants"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	InitializeLogger(cfg)
	InitializeServices(cfg)

	srv := NewServer(cfg, NewRouter(cfg))

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		Logger.Infof("[App] shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			Logger.Errorf("[App] forced shutdown: %v", err)
		}
	}()

	Logger.Infof("[App] %s %s listening on port %s (providers: %v)",
		constants.AppName, constants.AppVersion, cfg.Port, cfg.EnabledProviders)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Logger.Fatalf("[App] server failed: %v", err)
	}
}
