package openmeteo

import (
	"context"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// Resolve looks up name and returns the single best match.
func (c *Client) Resolve(ctx context.Context, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewSearchError(models.KindValidation, nil)
	}

	params := map[string]string{
		"name":     name,
		"count":    "1",
		"language": "en",
		"format":   "json",
	}

	var body geocodingResponse
	if err := c.get(ctx, metrics.EndpointGeocoding, c.geocodingURL, params, &body); err != nil {
		return nil, models.NewSearchError(models.KindLookupFailed, err)
	}

	if len(body.Results) == 0 {
		return nil, models.NewSearchError(models.KindNotFound, nil)
	}

	result := body.Results[0]
	return &models.Location{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Name:      result.Name,
		Country:   result.Country,
		Region:    result.Admin1,
	}, nil
}
