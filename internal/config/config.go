package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
	"github.com/i474232898/weather-pollution-etl/internal/weather/providers"
)

var validate = validator.New()

type AppConfig struct {
	// Overall extraction range, inclusive calendar dates.
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtefield=StartDate"`

	// Locations to extract, in output order.
	Locations []weather.Location `validate:"required,min=1,dive"`

	WeatherArchiveURL string        `validate:"required,url"`
	AirQualityURL     string        `validate:"required,url"`
	HTTPTimeout       time.Duration `validate:"gt=0"`

	OutputDir string `validate:"required"`
	LogDir    string `validate:"required"`
	LogLevel  string `validate:"oneof=DEBUG INFO WARN WARNING ERROR"`

	Workers            int `validate:"gte=1"`
	BreakerMaxFailures int `validate:"gte=0"` // 0 = no circuit breaker

	// Schedule is a cron expression; empty means run once and exit.
	Schedule   string
	Port       string
	RunHistory int `validate:"gte=0"` // runs kept for the status API (0 = unlimited)

	// Optional upload of the dataset to Cloud Storage.
	GCSBucket string
	GCSPrefix string
}

// Load reads configuration from environment (and .env if present) with the
// defaults of the three-year extraction.
func Load() (*AppConfig, error) {
	_ = godotenv.Load(".env")

	cfg := &AppConfig{}
	var err error

	if cfg.StartDate, err = getenvDate("START_DATE", "2022-11-06"); err != nil {
		return nil, err
	}
	if cfg.EndDate, err = getenvDate("END_DATE", "2025-11-06"); err != nil {
		return nil, err
	}

	cfg.Locations = weather.EuropeCapitals
	if path := strings.TrimSpace(os.Getenv("LOCATIONS_FILE")); path != "" {
		locs, err := loadLocations(path)
		if err != nil {
			return nil, err
		}
		cfg.Locations = locs
	}

	cfg.WeatherArchiveURL = getenvDefault("WEATHER_ARCHIVE_URL", providers.DefaultArchiveURL)
	cfg.AirQualityURL = getenvDefault("AIR_QUALITY_URL", providers.DefaultAirQualityURL)

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	cfg.OutputDir = getenvDefault("OUTPUT_DIR", "data/raw")
	cfg.LogDir = getenvDefault("LOG_DIR", "logs")
	cfg.LogLevel = strings.ToUpper(getenvDefault("LOG_LEVEL", "INFO"))

	cfg.Workers = getenvInt("EXTRACT_WORKERS", 1)
	cfg.BreakerMaxFailures = getenvInt("BREAKER_MAX_FAILURES", 0)

	cfg.Schedule = strings.TrimSpace(os.Getenv("EXTRACT_SCHEDULE"))
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.RunHistory = getenvInt("RUN_HISTORY", 50)

	cfg.GCSBucket = strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	cfg.GCSPrefix = strings.Trim(os.Getenv("GCS_PREFIX"), "/")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadLocations reads a YAML list of {country, city, lat, lon}.
func loadLocations(path string) ([]weather.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read LOCATIONS_FILE: %w", err)
	}
	var locs []weather.Location
	if err := yaml.Unmarshal(data, &locs); err != nil {
		return nil, fmt.Errorf("parse LOCATIONS_FILE: %w", err)
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDate(key, def string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, getenvDefault(key, def))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
