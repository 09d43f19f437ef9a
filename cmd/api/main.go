package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rousage/coffeeshop/internal/otel"
	"github.com/rousage/coffeeshop/internal/server"
)

func gracefulShutdown(ctx context.Context, apiServer *http.Server, done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")

	close(done)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	log.Logger = server.NewLogger(cfg.Environment, os.Stdout)

	otelShutdown, err := otel.SetupOTelSDK(ctx, cfg.Otel, cfg.App)
	if err != nil {
		log.Fatal().Err(err).Msg("error setting up OpenTelemetry SDK")
	}

	srv, cleanup, err := server.New(ctx, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Fatal().Err(err).Msg("error creating server")
	}

	done := make(chan struct{})
	go gracefulShutdown(ctx, srv, done)

	log.Info().Str("addr", srv.Addr).Str("api_server_url", cfg.Environment.APIServerURL).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server error")
	} else {
		// Wait for the graceful shutdown to complete
		<-done
	}

	cleanup()
	if err := otelShutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("error shutting down OpenTelemetry SDK")
	}
	log.Info().Msg("graceful shutdown complete")
}
