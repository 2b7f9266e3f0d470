// Package metrics records extraction metrics in a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

// PrometheusRecorder implements weather.Recorder.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	fetchTotal      *prometheus.CounterVec
	windowTotal     *prometheus.CounterVec
	rowsTotal       *prometheus.CounterVec
	runTotal        *prometheus.CounterVec
	runDurationSecs prometheus.Histogram
}

var _ weather.Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates a recorder with its own registry, which also
// carries the Go runtime and process collectors.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_fetch_total",
			Help: "Hourly fetches by source and result.",
		}, []string{"source", "result"}),
		windowTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_window_total",
			Help: "Processed (city, month) windows by result.",
		}, []string{"country", "city", "result"}),
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_merged_rows_total",
			Help: "Rows produced by the weather/air-quality join.",
		}, []string{"country", "city"}),
		runTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_run_total",
			Help: "Extraction runs by outcome.",
		}, []string{"outcome"}),
		runDurationSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "etl_run_duration_seconds",
			Help:    "Duration of extraction runs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	registry.MustRegister(r.fetchTotal, r.windowTotal, r.rowsTotal, r.runTotal, r.runDurationSecs)
	return r
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (r *PrometheusRecorder) ObserveFetch(source string, err error) {
	r.fetchTotal.WithLabelValues(source, result(err)).Inc()
}

func (r *PrometheusRecorder) ObserveWindow(loc weather.Location, rows int, err error) {
	r.windowTotal.WithLabelValues(loc.Country, loc.City, result(err)).Inc()
	if err == nil {
		r.rowsTotal.WithLabelValues(loc.Country, loc.City).Add(float64(rows))
	}
}

func (r *PrometheusRecorder) ObserveRun(outcome string, elapsed time.Duration) {
	r.runTotal.WithLabelValues(outcome).Inc()
	r.runDurationSecs.Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
