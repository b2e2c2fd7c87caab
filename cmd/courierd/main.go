package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courierdesk/internal/api"
	"courierdesk/internal/config"
	"courierdesk/internal/domain"
	"courierdesk/internal/events"
	"courierdesk/internal/logging"
	"courierdesk/internal/metrics"
	"courierdesk/internal/repository"
	"courierdesk/internal/service"
	"courierdesk/internal/store"
	"courierdesk/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	messengers, err := loadMessengers(&logger)
	if err != nil {
		return err
	}

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	storeClient := store.New(cfg.RecordStore, &logger)
	if redisClient != nil {
		storeClient.UseRedisCache(redisClient)
	}
	storeClient.OnSessionExpired(func() {
		logger.Warn().Msg("record store session expired, credentials must be refreshed")
	})

	snapshots := initSnapshots(cfg, redisClient, &logger)

	eventBus := events.NewEventBus()

	scheduleSvc := service.NewScheduleService(storeClient, snapshots, eventBus, cfg.Dispatch.DefaultMessenger, &logger)
	reportSvc := service.NewReportService(storeClient, cfg.Exports.Path, &logger)
	intakeSvc := service.NewIntakeService(storeClient, eventBus, &logger)

	refreshWorker := worker.NewRefreshWorker(scheduleSvc, worker.RetryPolicy{
		MaxRetries: cfg.Dispatch.RefreshMaxRetries,
	}, &logger)
	scheduleSvc.SetRefreshScheduler(refreshWorker)
	intakeSvc.SetRefreshScheduler(refreshWorker)

	httpServer := api.NewHTTPServer(cfg.API, scheduleSvc, reportSvc, intakeSvc, messengers, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go refreshWorker.Start(ctx)

	// Warm the snapshot so the first schedule request is served from cache.
	if err := scheduleSvc.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial schedule refresh failed, continuing with empty snapshot")
	}

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "courierd").Logger()

	return cfg, logger, closer, nil
}

// loadMessengers reads the courier roster offered to dispatchers when they
// complete a booking.
func loadMessengers(logger *zerolog.Logger) ([]string, error) {
	messengersPath := os.Getenv("MESSENGERS_PATH")
	if messengersPath == "" {
		messengersPath = "configs/messengers.yaml"
	}
	data, err := os.ReadFile(messengersPath)
	if err != nil {
		logger.Error().Err(err).Str("messengers_path", messengersPath).Msg("read messengers")
		return nil, err
	}

	var roster struct {
		Messengers []string `yaml:"messengers"`
	}
	if err := yaml.Unmarshal(data, &roster); err != nil {
		logger.Error().Err(err).Str("messengers_path", messengersPath).Msg("parse messengers")
		return nil, err
	}

	return roster.Messengers, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func initSnapshots(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SnapshotRepository {
	memory := repository.NewMemorySnapshotRepository()
	if redisClient == nil {
		return memory
	}

	ttl := time.Duration(cfg.Dispatch.SnapshotTTLSeconds) * time.Second
	primary := repository.NewRedisSnapshotRepository(redisClient, ttl)
	return repository.NewFailoverSnapshotRepository(primary, memory, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if !cfg.API.HTTP.Enabled {
			return
		}
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("courierdesk started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("courierdesk stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
