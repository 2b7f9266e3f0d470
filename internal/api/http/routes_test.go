package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-pollution-etl/internal/store"
	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

func newApp(runs *store.MemoryStore, metrics http.Handler) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, runs, metrics)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestLatestRunNotFound(t *testing.T) {
	app := newApp(store.NewMemoryStore(10), nil)

	resp, _ := get(t, app, "/api/v1/runs/latest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLatestAndByID(t *testing.T) {
	runs := store.NewMemoryStore(10)
	first := weather.RunSummary{ID: uuid.NewString(), Rows: 10, OutputPath: "data/raw/a.csv"}
	second := weather.RunSummary{ID: uuid.NewString(), Rows: 20, OutputPath: "data/raw/b.csv"}
	runs.SaveRun(first)
	runs.SaveRun(second)
	app := newApp(runs, nil)

	resp, body := get(t, app, "/api/v1/runs/latest")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var latest weather.RunSummary
	require.NoError(t, json.Unmarshal(body, &latest))
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 20, latest.Rows)

	resp, body = get(t, app, "/api/v1/runs/"+first.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byID weather.RunSummary
	require.NoError(t, json.Unmarshal(body, &byID))
	assert.Equal(t, "data/raw/a.csv", byID.OutputPath)

	resp, _ = get(t, app, "/api/v1/runs/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestRunQueryValidation verifies that malformed identifiers and limits are
// rejected before the store is consulted.
func TestRunQueryValidation(t *testing.T) {
	app := newApp(store.NewMemoryStore(10), nil)

	resp, _ := get(t, app, "/api/v1/runs/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, app, "/api/v1/runs?limit=5000")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, app, "/api/v1/runs?limit=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListRuns(t *testing.T) {
	runs := store.NewMemoryStore(10)
	for i := 0; i < 3; i++ {
		runs.SaveRun(weather.RunSummary{ID: uuid.NewString(), Rows: i})
	}
	app := newApp(runs, nil)

	resp, body := get(t, app, "/api/v1/runs?limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Runs []weather.RunSummary `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Runs, 2)
	assert.Equal(t, 2, payload.Runs[0].Rows)
	assert.Equal(t, 1, payload.Runs[1].Rows)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "etl_run_total 1\n")
	})
	app := newApp(store.NewMemoryStore(10), metrics)

	resp, body := get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "etl_run_total 1\n", string(body))
}
