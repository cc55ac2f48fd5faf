package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/auth"
	"github.com/UnknownOlympus/pitstop/internal/cache"
	"github.com/UnknownOlympus/pitstop/internal/config"
	"github.com/UnknownOlympus/pitstop/internal/events"
	"github.com/UnknownOlympus/pitstop/internal/geocoding"
	"github.com/UnknownOlympus/pitstop/internal/httpapi"
	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/repository"
	"github.com/UnknownOlympus/pitstop/internal/service"
	"github.com/UnknownOlympus/pitstop/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// Requests per second shared by all geocoding workers.
const providerRateLimit = 50

func main() {
	// The context is cancelled on SIGINT/SIGTERM and drives the graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Separate registry so only our collectors are exposed.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	if err = repository.Migrate(ctx, dtb); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := repository.NewRepository(dtb, logger)

	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TTL)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	images, err := storage.NewImageStore(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	garages := service.NewGarageService(logger, repo, appMetrics, cfg.Search.Radius, cfg.Search.Limit).
		WithImages(images)

	if cfg.Redis.URL != "" {
		rdb, rerr := cache.Connect(ctx, cfg.Redis.URL)
		if rerr != nil {
			log.Fatalf("Failed to connect to Redis: %v", rerr)
		}
		defer rdb.Close()

		garages.WithCache(cache.New(rdb, cfg.Redis.TTL, logger))
		logger.InfoContext(ctx, "Nearby cache enabled", "ttl", cfg.Redis.TTL)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger), logger)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Failed to close Kafka writer", "error", cerr)
			}
		}()

		publisher = kafkaPublisher
		logger.InfoContext(ctx, "Request events enabled", "topic", cfg.Kafka.Topic)
	}

	if providerType := geocoding.ParseProviderType(cfg.Geocoder.ProviderType); providerType != geocoding.ProviderTypeNone {
		// Factory selects Google, Visicom or Nominatim at runtime.
		geoProvider, gerr := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:      providerType,
			APIKey:    cfg.Geocoder.APIKey,
			RateLimit: providerRateLimit / max(cfg.Geocoder.Workers, 1),
			Logger:    logger,
		})
		if gerr != nil {
			log.Fatalf("Failed to create geocoding provider: %v", gerr)
		}
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", providerType)

		garages.WithGeocoder(geoProvider, cfg.Geocoder.AddrPrefix)

		geoService := service.NewGeocodingService(
			logger,
			repo,
			geoProvider,
			string(providerType), // Provider name for metrics
			appMetrics,
			cfg.Geocoder.Workers,
			cfg.Geocoder.Interval,
			cfg.Geocoder.AddrPrefix,
		)
		go geoService.Run(ctx)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Log:        logger,
		Accounts:   service.NewAccountService(logger, repo, issuer),
		Garages:    garages,
		Requests:   service.NewRequestService(logger, repo, repo, publisher, appMetrics),
		Tokens:     issuer,
		Metrics:    appMetrics,
		Gatherer:   reg,
		Health:     dtb,
		CORSOrigin: cfg.CORSOrigin,
		UploadDir:  images.Dir(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if serr := server.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", serr)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.Info("Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
