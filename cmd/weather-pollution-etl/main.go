package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-pollution-etl/internal/api/http"
	"github.com/i474232898/weather-pollution-etl/internal/config"
	"github.com/i474232898/weather-pollution-etl/internal/logging"
	"github.com/i474232898/weather-pollution-etl/internal/metrics"
	"github.com/i474232898/weather-pollution-etl/internal/scheduler"
	"github.com/i474232898/weather-pollution-etl/internal/storage"
	"github.com/i474232898/weather-pollution-etl/internal/store"
	"github.com/i474232898/weather-pollution-etl/internal/weather"
	"github.com/i474232898/weather-pollution-etl/internal/weather/providers"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.Get("main").Errorf("failed to load config: %v", err)
		return 1
	}
	logging.Configure(cfg.LogDir, cfg.LogLevel)
	log := logging.Get("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client for outbound archive calls.
	clientCfg := providers.HTTPClientConfig{
		Client:             &http.Client{Timeout: cfg.HTTPTimeout},
		BreakerMaxFailures: cfg.BreakerMaxFailures,
	}

	sink, err := newSink(ctx, cfg)
	if err != nil {
		log.Errorf("failed to set up output: %v", err)
		return 1
	}
	if c, ok := sink.(io.Closer); ok {
		defer c.Close()
	}

	recorder := metrics.NewPrometheusRecorder()
	runs := store.NewMemoryStore(cfg.RunHistory)

	service := weather.NewService(weather.ServiceConfig{
		Weather:    providers.NewArchiveProvider(clientCfg, cfg.WeatherArchiveURL),
		AirQuality: providers.NewAirQualityProvider(clientCfg, cfg.AirQualityURL),
		Sink:       sink,
		Locations:  cfg.Locations,
		Start:      cfg.StartDate,
		End:        cfg.EndDate,
		Workers:    cfg.Workers,
		Recorder:   recorder,
		Runs:       runs,
	})

	if cfg.Schedule == "" {
		return runOnce(ctx, log, service)
	}
	return serve(ctx, log, cfg, service, runs, recorder)
}

// newSink returns the local directory sink, fanned out to Cloud Storage when
// a bucket is configured.
func newSink(ctx context.Context, cfg *config.AppConfig) (weather.Sink, error) {
	local := storage.NewLocalSink(cfg.OutputDir)
	if cfg.GCSBucket == "" {
		return local, nil
	}
	gcs, err := storage.NewGCSSink(ctx, cfg.GCSBucket, cfg.GCSPrefix)
	if err != nil {
		return nil, err
	}
	return storage.NewMultiSink(local, gcs), nil
}

func runOnce(ctx context.Context, log *logging.Logger, service *weather.Service) int {
	summary, err := service.Run(ctx)
	switch {
	case errors.Is(err, weather.ErrNoData):
		log.Errorf("%v", err)
		return 1
	case err != nil:
		log.Errorf("extraction failed: %v", err)
		return 1
	}
	log.Infof("run %s finished: %d rows, %d of %d windows failed", summary.ID, summary.Rows, summary.Failed, summary.Windows)
	return 0
}

func serve(ctx context.Context, log *logging.Logger, cfg *config.AppConfig, service *weather.Service, runs *store.MemoryStore, recorder *metrics.PrometheusRecorder) int {
	// Scheduler that periodically re-runs the extraction.
	sched := scheduler.New(ctx, cfg.Schedule, service)
	if err := sched.Start(); err != nil {
		log.Errorf("failed to start scheduler: %v", err)
		return 1
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-pollution-etl",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{Output: logging.Get("http").Writer()}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-pollution-etl",
		})
	})

	httpapi.RegisterRoutes(app, runs, recorder.Handler())

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Warnf("fiber server stopped: %v", err)
		}
	}()
	log.Infof("status API listening on :%s", cfg.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	return 0
}
