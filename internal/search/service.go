// Package search runs the geocode, fan-out fetch sequence behind every
// search target.
package search

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/weather-terminal/internal/logger"
	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

// Result is everything fetched for one query. Fields not requested by a
// single-panel search stay zero. Marine is nil when the location has no
// marine data.
type Result struct {
	Query      string                    `json:"query"`
	Location   *models.Location          `json:"location"`
	Current    *models.CurrentConditions `json:"current,omitempty"`
	Historical []models.HistoricalDay    `json:"historical,omitempty"`
	Marine     *models.MarineConditions  `json:"marine,omitempty"`
}

type Service struct {
	geocoder   openmeteo.Geocoder
	forecaster openmeteo.Forecaster
	marine     openmeteo.MarineFetcher
	l          *logger.Logger
	metrics    *metrics.Metrics
}

func NewService(
	geocoder openmeteo.Geocoder,
	forecaster openmeteo.Forecaster,
	marine openmeteo.MarineFetcher,
	l *logger.Logger,
	m *metrics.Metrics,
) *Service {
	if l == nil {
		l = logger.NewNop()
	}
	return &Service{
		geocoder:   geocoder,
		forecaster: forecaster,
		marine:     marine,
		l:          l,
		metrics:    m,
	}
}

// Search resolves query, then fetches current, historical and marine data
// concurrently. A current or historical failure fails the whole search
// without waiting for the marine fetch; marine absence never does.
func (s *Service) Search(ctx context.Context, query string) (res *Result, err error) {
	s.metrics.SearchStarted()
	defer func() { s.finish(query, models.PanelNone, err) }()

	loc, err := s.resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	marineCh := make(chan *models.MarineConditions, 1)
	go func() {
		marineCh <- s.marine.FetchMarine(ctx, loc)
	}()

	res = &Result{Query: strings.TrimSpace(query), Location: loc}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := s.forecaster.FetchCurrent(gctx, loc)
		if err != nil {
			return err
		}
		res.Current = cur
		return nil
	})
	g.Go(func() error {
		days, err := s.forecaster.FetchHistorical(gctx, loc)
		if err != nil {
			return err
		}
		res.Historical = days
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	select {
	case res.Marine = <-marineCh:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "waiting for marine data")
	}

	return res, nil
}

// SearchPanel resolves query and fetches only the data behind panel. A
// marine search succeeds with a nil Marine when the location has none.
func (s *Service) SearchPanel(ctx context.Context, query string, panel models.Panel) (res *Result, err error) {
	s.metrics.SearchStarted()
	defer func() { s.finish(query, panel, err) }()

	if panel == models.PanelNone {
		return nil, errors.Errorf("unknown panel %q", panel)
	}

	loc, err := s.resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	res = &Result{Query: strings.TrimSpace(query), Location: loc}
	switch panel {
	case models.PanelCurrent:
		if res.Current, err = s.forecaster.FetchCurrent(ctx, loc); err != nil {
			return nil, err
		}
	case models.PanelHistorical:
		if res.Historical, err = s.forecaster.FetchHistorical(ctx, loc); err != nil {
			return nil, err
		}
	case models.PanelMarine:
		res.Marine = s.marine.FetchMarine(ctx, loc)
	}
	return res, nil
}

func (s *Service) resolve(ctx context.Context, query string) (*models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewSearchError(models.KindValidation, nil)
	}

	s.l.Info("search started", map[string]any{"query": query})

	loc, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	s.l.Debug("location resolved", map[string]any{
		"query":    query,
		"location": loc.DisplayName(),
		"coords":   loc.Coordinates(),
	})
	return loc, nil
}

func (s *Service) finish(query string, panel models.Panel, err error) {
	s.metrics.SearchFinished()

	fields := map[string]any{"query": strings.TrimSpace(query), "panel": panel.String()}
	if err == nil {
		s.metrics.ObserveSearch("success")
		s.l.Info("search completed", fields)
		return
	}

	kind := models.KindOf(err)
	switch kind {
	case 0:
		s.metrics.ObserveSearch("error")
		s.l.Error(err, fields)
	case models.KindValidation, models.KindNotFound:
		s.metrics.ObserveSearch(kind.String())
		fields["kind"] = kind.String()
		s.l.Warning(err.Error(), fields)
	default:
		s.metrics.ObserveSearch(kind.String())
		fields["kind"] = kind.String()
		if cause := errors.Unwrap(err); cause != nil {
			fields["cause"] = cause.Error()
		}
		s.l.Error(err, fields)
	}
}
