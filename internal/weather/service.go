package weather

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-pollution-etl/internal/logging"
)

// ErrNoData is returned when a run produced no merged table at all.
var ErrNoData = errors.New("no data retrieved")

// OutputPrefix is the file name prefix of the written dataset.
const OutputPrefix = "open_meteo_europe_weather_pollution_3years_"

// ServiceConfig bundles the collaborators and settings of a Service.
type ServiceConfig struct {
	Weather    HourlySource
	AirQuality HourlySource
	Sink       Sink

	Locations []Location
	Start     time.Time
	End       time.Time

	// Workers bounds how many locations are extracted at once; <= 1 means sequential.
	Workers int

	Recorder Recorder
	Runs     RunStore
}

// Service orchestrates the month-by-month extraction of every location,
// merges both sources and writes the combined dataset.
type Service struct {
	weather    HourlySource
	airQuality HourlySource
	sink       Sink

	locations []Location
	start     time.Time
	end       time.Time
	workers   int

	recorder Recorder
	runs     RunStore
	log      *logging.Logger
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		weather:    cfg.Weather,
		airQuality: cfg.AirQuality,
		sink:       cfg.Sink,
		locations:  cfg.Locations,
		start:      Date(cfg.Start),
		end:        Date(cfg.End),
		workers:    cfg.Workers,
		recorder:   cfg.Recorder,
		runs:       cfg.Runs,
		log:        logging.Get("weather.service"),
		now:        time.Now,
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	return s
}

type runCounters struct {
	windows atomic.Int64
	failed  atomic.Int64
}

// Run extracts every (location, window) pair, logging and skipping the
// pairs that fail, and writes the concatenation of all merged tables. It
// returns ErrNoData, without writing anything, when no pair succeeded.
// Once ctx is cancelled no further windows are fetched, but what was
// already gathered is still written.
func (s *Service) Run(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{
		ID:        uuid.NewString(),
		StartedAt: s.now().UTC(),
		Locations: len(s.locations),
	}
	s.log.Infof("run %s: %d locations, %s -> %s, %d worker(s)",
		summary.ID, len(s.locations), s.start.Format(time.DateOnly), s.end.Format(time.DateOnly), s.workers)

	// one slot per location keeps the output in location order
	results := make([][]dataframe.DataFrame, len(s.locations))
	var counters runCounters

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i, loc := range s.locations {
		g.Go(func() error {
			results[i] = s.extractLocation(ctx, loc, &counters)
			return nil
		})
	}
	_ = g.Wait()

	summary.Windows = int(counters.windows.Load())
	summary.Failed = int(counters.failed.Load())

	var frames []dataframe.DataFrame
	for _, r := range results {
		frames = append(frames, r...)
	}

	path, rows, err := s.write(context.WithoutCancel(ctx), frames)
	summary.FinishedAt = s.now().UTC()
	summary.OutputPath = path
	summary.Rows = rows
	if err != nil {
		summary.Error = err.Error()
	}
	s.finish(summary)
	return summary, err
}

func (s *Service) finish(summary RunSummary) {
	s.recorder.ObserveRun(summary.Outcome(), summary.FinishedAt.Sub(summary.StartedAt))
	if s.runs != nil {
		s.runs.SaveRun(summary)
	}
}

func (s *Service) extractLocation(ctx context.Context, loc Location, counters *runCounters) []dataframe.DataFrame {
	s.log.Infof("[CITY] %s, %s", loc.City, loc.Country)

	var frames []dataframe.DataFrame
	for w := range MonthWindows(s.start, s.end) {
		if ctx.Err() != nil {
			s.log.Warnf("run interrupted before %s %s: %v", loc.City, w, ctx.Err())
			break
		}
		s.log.Infof("  > period %s", w)
		counters.windows.Add(1)

		merged, err := s.extractWindow(ctx, loc, w)
		s.recorder.ObserveWindow(loc, merged.Nrow(), err)
		if err != nil {
			counters.failed.Add(1)
			s.log.Errorf("error %s, %s %s: %v", loc.City, loc.Country, w, err)
			continue
		}
		frames = append(frames, merged)
	}
	return frames
}

func (s *Service) extractWindow(ctx context.Context, loc Location, w Window) (dataframe.DataFrame, error) {
	weatherTbl, err := s.weather.FetchHourly(ctx, loc, w)
	s.recorder.ObserveFetch(s.weather.Name(), err)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", s.weather.Name(), err)
	}

	airTbl, err := s.airQuality.FetchHourly(ctx, loc, w)
	s.recorder.ObserveFetch(s.airQuality.Name(), err)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", s.airQuality.Name(), err)
	}

	return MergeWindow(loc, weatherTbl, airTbl)
}

// write concatenates the frames and hands the CSV to the sink.
func (s *Service) write(ctx context.Context, frames []dataframe.DataFrame) (string, int, error) {
	if len(frames) == 0 {
		s.log.Errorf("no data retrieved for %s -> %s", s.start.Format(time.DateOnly), s.end.Format(time.DateOnly))
		return "", 0, ErrNoData
	}

	final, err := Concat(frames)
	if err != nil {
		s.log.Errorf("concatenating %d tables: %v", len(frames), err)
		return "", 0, fmt.Errorf("concat: %w", err)
	}

	var buf bytes.Buffer
	if err := final.WriteCSV(&buf); err != nil {
		return "", 0, fmt.Errorf("encode csv: %w", err)
	}

	name := OutputPrefix + s.now().UTC().Format("20060102T150405Z") + ".csv"
	path, err := s.sink.Put(ctx, name, &buf)
	if err != nil {
		s.log.Errorf("writing %s: %v", name, err)
		return path, final.Nrow(), fmt.Errorf("write output: %w", err)
	}

	s.log.Infof("dataset saved: %s (%d rows, %d columns)", path, final.Nrow(), final.Ncol())
	return path, final.Nrow(), nil
}
