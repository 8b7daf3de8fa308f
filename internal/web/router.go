package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ngmaloney/weather-terminal/internal/logger"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/search"
)

// Searcher runs the geocode and fetch sequence for a query
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Result, error)
	SearchPanel(ctx context.Context, query string, panel models.Panel) (*search.Result, error)
}

type routes struct {
	service Searcher
	l       *logger.Logger
	now     func() time.Time
}

// NewRouter registers the API routes on app. A nil gatherer leaves
// /metrics unregistered.
func NewRouter(
	app *fiber.App,
	service Searcher,
	gatherer prometheus.Gatherer,
	l *logger.Logger,
	now func() time.Time,
) {
	if l == nil {
		l = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	r := &routes{
		service: service,
		l:       l,
		now:     now,
	}

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/search", r.handleSearch)
	api.Get("/panels/:panel", r.handlePanelSearch)
}
