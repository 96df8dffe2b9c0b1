package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furnistore/internal/auth"
	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/config"
	"furnistore/internal/handler"
	"furnistore/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting furnistore storefront")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the session blob store
	blobs, err := blob.NewFromConfig(cfg.Blob, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	// Load the sample catalogue with S3 and local file fallback
	fileSource := catalog.NewFileSource(cfg.Sample.Path, logger)
	var sampleSource catalog.Source

	if cfg.Sample.S3Enabled {
		s3Source, err := catalog.NewS3Source(ctx, cfg.Sample.S3Bucket, cfg.Sample.S3Region, cfg.Sample.S3Key, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 sample source, falling back to local file only")
			sampleSource = fileSource
		} else {
			sampleSource = catalog.NewFallbackSource(s3Source, fileSource, logger)
		}
	} else {
		sampleSource = fileSource
		logger.Info().Msg("using local file for sample catalog (S3 disabled)")
	}

	sample, err := catalog.NewSample(ctx, sampleSource)
	if err != nil {
		return fmt.Errorf("failed to load sample catalog: %w", err)
	}
	logger.Info().Int("products", sample.Len()).Msg("sample catalog ready")

	// Catalogue clients are built per session: each carries that session's
	// bearer token and performs that session's silent refresh on a 401.
	httpClient := &http.Client{Timeout: cfg.Catalog.Timeout}
	newClient := func(session blob.Store) catalog.Client {
		tokens := auth.NewSession(session, cfg.Catalog.BaseURL, httpClient, logger)
		return catalog.NewHTTPClient(cfg.Catalog.BaseURL, httpClient, tokens, logger)
	}
	newResolver := func(session blob.Store) catalog.Resolver {
		return catalog.NewResolver(newClient(session), sample, logger)
	}

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(blobs, newResolver, logger)
	checkoutHandler := handler.NewCheckoutHandler(blobs, newResolver, cfg.Checkout, logger)
	orderHandler := handler.NewOrderHandler(blobs, logger)
	viewedHandler := handler.NewViewedHandler(blobs, logger)
	addressHandler := handler.NewAddressHandler(logger)
	catalogHandler := handler.NewCatalogHandler(blobs, newClient, newResolver, logger)

	// Initialize router
	mux := router.New(cartHandler, checkoutHandler, orderHandler, viewedHandler, addressHandler, catalogHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
