package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/nimbusview/weather-backend/internal/api/http"
	"github.com/nimbusview/weather-backend/internal/config"
	"github.com/nimbusview/weather-backend/internal/geocode"
	"github.com/nimbusview/weather-backend/internal/scheduler"
	"github.com/nimbusview/weather-backend/internal/store"
	"github.com/nimbusview/weather-backend/internal/weather"
	"github.com/nimbusview/weather-backend/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
	}

	// Upstream provider: live WeatherAPI, or the simulated generator in
	// demo mode or when no credential is configured.
	var provider weather.Provider
	if cfg.DemoMode || cfg.WeatherAPIKey == "" {
		if !cfg.DemoMode {
			log.Println("INFO: no WEATHERAPI_API_KEY configured; serving simulated forecasts")
		}
		provider = providers.NewSimulatedProvider()
	} else {
		provider = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	}

	cache := store.NewSnapshotCache()
	normalizer := weather.NewNormalizer(cfg.Normalizer)
	service := weather.NewService(provider, normalizer, cache, cfg.CacheMaxAge, cfg.FetchTimeout)

	// Optional background job keeping the cache warm for a home location.
	if cfg.HomeSet {
		sched := scheduler.New(cfg.HomeLat, cfg.HomeLon, cfg.RefreshInterval, service)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	geocoder := geocode.NewClient(httpClient)

	app := fiber.New(fiber.Config{
		AppName:               "weather-backend",
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-backend",
		})
	})

	httpapi.RegisterRoutes(app, service, geocoder)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
