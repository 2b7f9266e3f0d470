package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/i474232898/weather-pollution-etl/internal/store"
	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

var validate = validator.New()

// RunReader is the read side of the run history.
type RunReader interface {
	Latest() (weather.RunSummary, error)
	Get(id string) (weather.RunSummary, error)
	List(limit int) []weather.RunSummary
}

// RegisterRoutes wires the status handlers into the Fiber app. metrics may
// be nil.
func RegisterRoutes(app *fiber.App, runs RunReader, metrics http.Handler) {
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/runs", func(c *fiber.Ctx) error {
		var q listQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"runs": runs.List(q.Limit),
		})
	})

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		run, err := runs.Latest()
		if err != nil {
			return runError(err)
		}
		return c.JSON(run)
	})

	v1.Get("/runs/:id", func(c *fiber.Ctx) error {
		q := runQuery{ID: c.Params("id")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		run, err := runs.Get(q.ID)
		if err != nil {
			return runError(err)
		}
		return c.JSON(run)
	})
}

func runError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no extraction run found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read run history")
}

// listQuery holds query parameters for the run list.
type listQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=1000"`
}

// runQuery identifies a single run.
type runQuery struct {
	ID string `validate:"required,uuid4"`
}
