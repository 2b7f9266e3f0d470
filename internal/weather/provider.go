package weather

import (
	"context"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// HourlySource abstracts an hourly observation archive (e.g. the Open-Meteo
// weather archive or air-quality API). The returned table holds one column
// per hourly field, including "time". A response without hourly data yields
// an empty table with no columns.
type HourlySource interface {
	Name() string
	FetchHourly(ctx context.Context, loc Location, w Window) (dataframe.DataFrame, error)
}

// Sink persists the final dataset under the given file name and returns
// where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// RunStore keeps summaries of past runs.
type RunStore interface {
	SaveRun(summary RunSummary)
}

// Recorder receives extraction metrics.
type Recorder interface {
	ObserveFetch(source string, err error)
	ObserveWindow(loc Location, rows int, err error)
	ObserveRun(outcome string, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(string, error)         {}
func (noopRecorder) ObserveWindow(Location, int, error) {}
func (noopRecorder) ObserveRun(string, time.Duration)   {}
