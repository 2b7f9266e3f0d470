package weather

import (
	"time"
)

// Location represents a city for which hourly observations are extracted.
// Coordinates are decimal degrees.
type Location struct {
	Country   string  `json:"country" yaml:"country" validate:"required"`
	City      string  `json:"city" yaml:"city" validate:"required"`
	Latitude  float64 `json:"latitude" yaml:"lat" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"lon" validate:"gte=-180,lte=180"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Window is an inclusive range of calendar dates inside one month.
// Start and End are dates at midnight UTC.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) String() string {
	return w.Start.Format(time.DateOnly) + " -> " + w.End.Format(time.DateOnly)
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// RunSummary describes one extraction run.
type RunSummary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Locations int `json:"locations"`
	Windows   int `json:"windows"`
	Failed    int `json:"failedWindows"`
	Rows      int `json:"rows"`

	// OutputPath is empty when nothing was written.
	OutputPath string `json:"outputPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Outcome classifies the run for metrics and status reporting.
func (r RunSummary) Outcome() string {
	switch {
	case r.OutputPath == "" && r.Error != "":
		return "failed"
	case r.Failed > 0:
		return "partial"
	default:
		return "succeeded"
	}
}
