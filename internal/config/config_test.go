package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
	"github.com/i474232898/weather-pollution-etl/internal/weather/providers"
)

var envKeys = []string{
	"START_DATE", "END_DATE", "LOCATIONS_FILE", "WEATHER_ARCHIVE_URL", "AIR_QUALITY_URL",
	"HTTP_TIMEOUT", "OUTPUT_DIR", "LOG_DIR", "LOG_LEVEL", "EXTRACT_WORKERS",
	"BREAKER_MAX_FAILURES", "EXTRACT_SCHEDULE", "PORT", "RUN_HISTORY", "GCS_BUCKET", "GCS_PREFIX",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, 11, 6, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Equal(t, weather.EuropeCapitals, cfg.Locations)
	assert.Equal(t, providers.DefaultArchiveURL, cfg.WeatherArchiveURL)
	assert.Equal(t, providers.DefaultAirQualityURL, cfg.AirQualityURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "data/raw", cfg.OutputDir)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 0, cfg.BreakerMaxFailures)
	assert.Empty(t, cfg.Schedule)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("START_DATE", "2024-01-15")
	t.Setenv("END_DATE", "2024-03-01")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("EXTRACT_WORKERS", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXTRACT_SCHEDULE", "0 3 * * *")
	t.Setenv("GCS_BUCKET", "etl-bucket")
	t.Setenv("GCS_PREFIX", "/raw/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "0 3 * * *", cfg.Schedule)
	assert.Equal(t, "etl-bucket", cfg.GCSBucket)
	assert.Equal(t, "raw", cfg.GCSPrefix)
}

func TestLoadSingleDayRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("START_DATE", "2024-01-15")
	t.Setenv("END_DATE", "2024-01-15")

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad start date":   {"START_DATE": "06/11/2022"},
		"end before start": {"START_DATE": "2024-02-01", "END_DATE": "2024-01-01"},
		"bad timeout":      {"HTTP_TIMEOUT": "thirty"},
		"bad url":          {"AIR_QUALITY_URL": "not a url"},
		"bad level":        {"LOG_LEVEL": "chatty"},
		"no workers":       {"EXTRACT_WORKERS": "0"},
		"missing file":     {"LOCATIONS_FILE": "/does/not/exist.yaml"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadLocationsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- country: France
  city: Paris
  lat: 48.8566
  lon: 2.3522
- country: Iceland
  city: Reykjavik
  lat: 64.1466
  lon: -21.9426
`), 0o644))
	t.Setenv("LOCATIONS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []weather.Location{
		{Country: "France", City: "Paris", Latitude: 48.8566, Longitude: 2.3522},
		{Country: "Iceland", City: "Reykjavik", Latitude: 64.1466, Longitude: -21.9426},
	}, cfg.Locations)
}

func TestLoadLocationsFileValidation(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- country: Nowhere
  city: ""
  lat: 123
  lon: 0
`), 0o644))
	t.Setenv("LOCATIONS_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
