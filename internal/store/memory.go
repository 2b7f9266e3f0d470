package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

var (
	// ErrNotFound is returned when no run matches the request.
	ErrNotFound = errors.New("no run found")
)

// MemoryStore is a concurrency-safe in-memory history of extraction runs,
// oldest first.
type MemoryStore struct {
	mu sync.RWMutex

	runs []weather.RunSummary

	// retention configuration
	maxHistory int // max number of runs kept
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
	}
}

// SaveRun appends a run summary and enforces retention.
func (s *MemoryStore) SaveRun(summary weather.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, summary)

	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = append([]weather.RunSummary(nil), s.runs[over:]...)
	}
}

// Latest returns the most recent run.
func (s *MemoryStore) Latest() (weather.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return weather.RunSummary{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Get returns the run with the given ID.
func (s *MemoryStore) Get(id string) (weather.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.runs) - 1; i >= 0; i-- {
		if s.runs[i].ID == id {
			return s.runs[i], nil
		}
	}
	return weather.RunSummary{}, ErrNotFound
}

// List returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *MemoryStore) List(limit int) []weather.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]weather.RunSummary, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.runs[i])
	}
	return result
}
