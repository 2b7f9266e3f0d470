package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

const (
	DefaultArchiveURL    = "https://archive-api.open-meteo.com/v1/archive"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
)

var (
	// ArchiveVariables are the hourly fields requested from the weather archive.
	ArchiveVariables = []string{
		"temperature_2m", "relativehumidity_2m", "precipitation", "cloudcover",
		"windspeed_10m", "winddirection_10m", "pressure_msl", "dewpoint_2m", "visibility",
	}

	// AirQualityVariables are the hourly fields requested from the air-quality API.
	AirQualityVariables = []string{
		"pm10", "pm2_5", "carbon_monoxide", "nitrogen_dioxide", "sulphur_dioxide",
		"ozone", "european_aqi", "european_aqi_pm2_5", "european_aqi_pm10",
	}
)

// OpenMeteoProvider implements weather.HourlySource for one Open-Meteo
// hourly endpoint.
type OpenMeteoProvider struct {
	name      string
	baseURL   string
	variables []string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

var _ weather.HourlySource = (*OpenMeteoProvider)(nil)

// NewArchiveProvider returns the historical weather source. An empty
// baseURL selects DefaultArchiveURL.
func NewArchiveProvider(cfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	return newOpenMeteoProvider("weather_archive", baseURL, ArchiveVariables, cfg)
}

// NewAirQualityProvider returns the historical air-quality source. An empty
// baseURL selects DefaultAirQualityURL.
func NewAirQualityProvider(cfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultAirQualityURL
	}
	return newOpenMeteoProvider("air_quality", baseURL, AirQualityVariables, cfg)
}

func newOpenMeteoProvider(name, baseURL string, variables []string, cfg HTTPClientConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:      name,
		baseURL:   baseURL,
		variables: variables,
		httpCfg:   cfg,
		circuit:   newBreaker(name, cfg.BreakerMaxFailures),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchHourly issues one GET for the window and returns the "hourly"
// section as a table of string columns. JSON nulls become empty cells and
// numbers keep their literal text.
func (p *OpenMeteoProvider) FetchHourly(ctx context.Context, loc weather.Location, w weather.Window) (dataframe.DataFrame, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("start_date", w.Start.Format(time.DateOnly))
	values.Set("end_date", w.End.Format(time.DateOnly))
	values.Set("hourly", strings.Join(p.variables, ","))
	values.Set("timezone", "auto")

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	resp, err := doRequest(ctx, p.httpCfg.Client, p.circuit, req)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly map[string][]json.RawMessage `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return p.table(payload.Hourly)
}

func (p *OpenMeteoProvider) table(hourly map[string][]json.RawMessage) (dataframe.DataFrame, error) {
	if len(hourly) == 0 {
		return dataframe.DataFrame{}, nil
	}

	names := p.columnOrder(hourly)
	rows := len(hourly[names[0]])
	cols := make([]series.Series, 0, len(names))
	for _, name := range names {
		raw := hourly[name]
		if len(raw) != rows {
			return dataframe.DataFrame{}, fmt.Errorf("%w: column %q has %d values, expected %d", ErrMalformedResponse, name, len(raw), rows)
		}
		cells := make([]string, len(raw))
		for i, r := range raw {
			text, err := cellText(r)
			if err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("%w: column %q row %d: %v", ErrMalformedResponse, name, i, err)
			}
			cells[i] = text
		}
		cols = append(cols, series.New(cells, series.String, name))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformedResponse, df.Err)
	}
	return df, nil
}

// columnOrder puts "time" first, then the requested variables, then any
// other returned keys sorted by name.
func (p *OpenMeteoProvider) columnOrder(hourly map[string][]json.RawMessage) []string {
	names := make([]string, 0, len(hourly))
	if _, ok := hourly[weather.ColumnTime]; ok {
		names = append(names, weather.ColumnTime)
	}
	for _, v := range p.variables {
		if _, ok := hourly[v]; ok && v != weather.ColumnTime {
			names = append(names, v)
		}
	}

	var extra []string
	for k := range hourly {
		if !slices.Contains(names, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func cellText(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "" || s == "null":
		return "", nil
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", err
		}
		return v, nil
	default:
		return s, nil
	}
}
