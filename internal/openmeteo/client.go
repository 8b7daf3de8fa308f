package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ngmaloney/weather-terminal/internal/logger"
	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultMarineURL    = "https://marine-api.open-meteo.com/v1/marine"
)

// Geocoder resolves a free-text place name to a location.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (*models.Location, error)
}

// Forecaster fetches the two forecast slices every search needs.
type Forecaster interface {
	FetchCurrent(ctx context.Context, loc *models.Location) (*models.CurrentConditions, error)
	FetchHistorical(ctx context.Context, loc *models.Location) ([]models.HistoricalDay, error)
}

// MarineFetcher fetches sea-state data. A nil result means no marine data
// exists for the location; it is never an error.
type MarineFetcher interface {
	FetchMarine(ctx context.Context, loc *models.Location) *models.MarineConditions
}

type Options struct {
	GeocodingURL string
	ForecastURL  string
	MarineURL    string
	// Timeout of zero leaves requests bounded only by the transport.
	Timeout time.Duration
	Logger  *logger.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Client talks to the Open-Meteo geocoding, forecast and marine endpoints.
// It satisfies Geocoder, Forecaster and MarineFetcher.
type Client struct {
	http         *resty.Client
	geocodingURL string
	forecastURL  string
	marineURL    string
	l            *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewClient(opts Options) *Client {
	c := &Client{
		geocodingURL: opts.GeocodingURL,
		forecastURL:  opts.ForecastURL,
		marineURL:    opts.MarineURL,
		l:            opts.Logger,
		metrics:      opts.Metrics,
		now:          opts.Now,
	}
	if c.geocodingURL == "" {
		c.geocodingURL = DefaultGeocodingURL
	}
	if c.forecastURL == "" {
		c.forecastURL = DefaultForecastURL
	}
	if c.marineURL == "" {
		c.marineURL = DefaultMarineURL
	}
	if c.l == nil {
		c.l = logger.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}

	// Open-Meteo needs no key or custom headers; requests go out as plain GETs.
	c.http = resty.New().SetLogger(c.l)
	if opts.Timeout > 0 {
		c.http.SetTimeout(opts.Timeout)
	}

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.l.Debug("upstream response", map[string]any{
			"method":   resp.Request.Method,
			"url":      resp.Request.URL,
			"status":   resp.StatusCode(),
			"duration": resp.Time().String(),
			"bytes":    len(resp.Body()),
		})
		return nil
	})
	c.http.OnError(func(req *resty.Request, err error) {
		c.l.Debug("upstream request failed", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"err":    err.Error(),
		})
	})

	return c
}

// get issues one GET, records it, and decodes a successful body into out.
// Non-2xx statuses and transport failures are the only faults signalled.
func (c *Client) get(ctx context.Context, endpoint, url string, params map[string]string, out any) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, elapsed)
		return fmt.Errorf("executing %s request: %w", endpoint, err)
	}
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode(), elapsed)

	if !resp.IsSuccess() {
		return fmt.Errorf("%s API returned status %d", endpoint, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

func coordParams(loc *models.Location) map[string]string {
	return map[string]string{
		"latitude":  strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		"timezone":  "auto",
	}
}
