package weather

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	ColumnTime    = "time"
	ColumnCountry = "country"
	ColumnCity    = "city"
)

var (
	// ErrMissingJoinKey is returned when a table has no "time" column.
	ErrMissingJoinKey = errors.New("table has no time column")

	joinKeys = []string{ColumnTime, ColumnCountry, ColumnCity}
)

// MergeWindow tags both tables with the location's country and city and
// inner-joins them on time, country and city. Hours present in only one of
// the tables are dropped.
func MergeWindow(loc Location, weatherTbl, airTbl dataframe.DataFrame) (dataframe.DataFrame, error) {
	w, err := tagLocation(weatherTbl, loc)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("weather table: %w", err)
	}
	a, err := tagLocation(airTbl, loc)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("air quality table: %w", err)
	}

	merged := w.InnerJoin(a, joinKeys...)
	if merged.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("inner join: %w", merged.Err)
	}
	return merged, nil
}

func tagLocation(df dataframe.DataFrame, loc Location) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}
	if !slices.Contains(df.Names(), ColumnTime) {
		return df, ErrMissingJoinKey
	}

	n := df.Nrow()
	df = df.
		Mutate(series.New(repeat(loc.Country, n), series.String, ColumnCountry)).
		Mutate(series.New(repeat(loc.City, n), series.String, ColumnCity))
	return df, df.Err
}

func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Concat stacks tables row-wise in order. The result holds the union of
// all columns, in first-seen order; cells of columns a table lacks are
// left empty.
func Concat(tables []dataframe.DataFrame) (dataframe.DataFrame, error) {
	if len(tables) == 0 {
		return dataframe.DataFrame{}, ErrNoData
	}

	var names []string
	total := 0
	for _, t := range tables {
		if t.Err != nil {
			return dataframe.DataFrame{}, t.Err
		}
		for _, name := range t.Names() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
		total += t.Nrow()
	}

	cols := make([][]string, len(names))
	for i := range cols {
		cols[i] = make([]string, 0, total)
	}
	for _, t := range tables {
		present := t.Names()
		for i, name := range names {
			if slices.Contains(present, name) {
				cols[i] = append(cols[i], t.Col(name).Records()...)
			} else {
				cols[i] = append(cols[i], make([]string, t.Nrow())...)
			}
		}
	}

	out := make([]series.Series, len(names))
	for i, name := range names {
		out[i] = series.New(cols[i], series.String, name)
	}
	df := dataframe.New(out...)
	return df, df.Err
}
