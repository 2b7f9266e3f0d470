package weather

import (
	"iter"
	"time"
)

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthWindows partitions [start, end] into consecutive month-aligned
// windows. The first window begins at start, every later one on the 1st of
// its month; each window ends on the last day of its month except the final
// one, which ends at end. The sequence is empty when start is after end and
// may be ranged over any number of times.
func MonthWindows(start, end time.Time) iter.Seq[Window] {
	start, end = Date(start), Date(end)

	return func(yield func(Window) bool) {
		if start.After(end) {
			return
		}
		from := start
		for {
			// day 0 of the next month is the last day of this one
			last := time.Date(from.Year(), from.Month()+1, 0, 0, 0, 0, 0, time.UTC)
			to := last
			if to.After(end) {
				to = end
			}
			if !yield(Window{Start: from, End: to}) {
				return
			}
			if !to.Before(end) {
				return
			}
			from = last.AddDate(0, 0, 1)
		}
	}
}
