package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/config"
	"github.com/light-bringer/catalog-pricing-service/internal/services"
	httptransport "github.com/light-bringer/catalog-pricing-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("spanner_database", cfg.SpannerDatabase).
		Int("http_port", cfg.HTTPPort).
		Str("deal_reset_policy", cfg.DealResetPolicy).
		Msg("starting catalog pricing service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      httptransport.NewRouter(serviceOpts.Handlers, cfg.IsProduction()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ImportLockTTL,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("HTTP server listening on :%d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	return nil
}
