package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nimbusview/weather-backend/internal/weather"
)

type AppConfig struct {
	// WeatherAPIKey authenticates against WeatherAPI.com. When empty and
	// DemoMode is off, fetches fail and the service can only serve cache.
	WeatherAPIKey string

	// DemoMode serves simulated forecasts instead of calling upstream.
	DemoMode bool

	// FetchTimeout bounds one upstream round trip.
	FetchTimeout time.Duration

	// CacheMaxAge is the snapshot freshness threshold.
	CacheMaxAge time.Duration

	// RefreshInterval controls the background cache-warming job.
	RefreshInterval time.Duration

	// HomeLat/HomeLon are the coordinates the background job refreshes.
	// The job is disabled when they are unset.
	HomeLat, HomeLon float64
	HomeSet          bool

	// Normalizer holds the provider-gap fallback tuning.
	Normalizer weather.NormalizerOptions

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.DemoMode = getenvBool("DEMO_MODE", false)
	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", weather.DefaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", weather.DefaultMaxAge); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", weather.DefaultMaxAge); err != nil {
		return nil, err
	}

	cfg.Normalizer = weather.DefaultNormalizerOptions()
	cfg.Normalizer.DailyPressureHpa = getenvFloat("DAILY_PRESSURE_DEFAULT", cfg.Normalizer.DailyPressureHpa)
	cfg.Normalizer.HumidityMinOffset = getenvFloat("HUMIDITY_MIN_OFFSET", cfg.Normalizer.HumidityMinOffset)

	if err := loadHomeLocation(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadHomeLocation reads the optional background-refresh coordinates.
// Both must be set together.
func loadHomeLocation(cfg *AppConfig) error {
	latStr := os.Getenv("HOME_LAT")
	lonStr := os.Getenv("HOME_LON")
	if latStr == "" && lonStr == "" {
		return nil
	}
	if latStr == "" || lonStr == "" {
		return fmt.Errorf("HOME_LAT and HOME_LON must both be set")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return fmt.Errorf("invalid HOME_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return fmt.Errorf("invalid HOME_LON: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("HOME_LAT/HOME_LON out of range: %f,%f", lat, lon)
	}

	cfg.HomeLat = lat
	cfg.HomeLon = lon
	cfg.HomeSet = true
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
