package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthpal-app/backend/internal/adapters/providers/facilities"
	"github.com/healthpal-app/backend/internal/adapters/providers/geolocation"
	"github.com/healthpal-app/backend/internal/api/handlers"
	"github.com/healthpal-app/backend/internal/api/routes"
	"github.com/healthpal-app/backend/internal/application/services"
	"github.com/healthpal-app/backend/internal/domain/providers"
	"github.com/healthpal-app/backend/internal/infrastructure/observability"
	"github.com/healthpal-app/backend/pkg/config"
)

func main() {

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize providers
	var geocodingProvider providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geocodingProvider = geolocation.NewNominatimProviderWithOptions(
			cfg.Geocoding.BaseURL,
			cfg.Geocoding.UserAgent,
			&http.Client{Timeout: cfg.Geocoding.Timeout},
		)
	default:
		logger.Warn().Str("provider", cfg.Geocoding.Provider).Msg("using mock geocoding provider")
		geocodingProvider = geolocation.NewMockGeocodingProvider()
	}

	var facilityProvider providers.FacilityDataProvider
	switch cfg.Facilities.Provider {
	case "overpass":
		facilityProvider = facilities.NewOverpassProviderWithOptions(
			cfg.Facilities.BaseURL,
			&http.Client{Timeout: cfg.Facilities.Timeout},
		)
	default:
		logger.Warn().Str("provider", cfg.Facilities.Provider).Msg("using mock facility provider")
		facilityProvider = facilities.NewMockFacilityProvider()
	}

	// Initialize services
	locatorService := services.NewFacilityLocatorService(geocodingProvider, facilityProvider)
	locatorService.SetMetrics(metrics)

	// Initialize handlers
	facilityLocatorHandler := handlers.NewFacilityLocatorHandler(locatorService)
	geolocationHandler := handlers.NewGeolocationHandler(geocodingProvider)

	// Set up router
	router := routes.NewRouter(facilityLocatorHandler, geolocationHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// A search that widens across several radius tiers can be slow.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
