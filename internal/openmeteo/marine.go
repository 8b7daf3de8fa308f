package openmeteo

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

const marineFields = "wave_height,sea_surface_temperature,wind_wave_height"

type marineResponse struct {
	Hourly struct {
		Time           []string   `json:"time"`
		WaveHeight     []*float64 `json:"wave_height"`
		SeaSurfaceTemp []*float64 `json:"sea_surface_temperature"`
		WindWaveHeight []*float64 `json:"wind_wave_height"`
	} `json:"hourly"`
}

// FetchMarine returns the latest hourly marine sample, or nil when the
// request fails or the location has no wave data.
func (c *Client) FetchMarine(ctx context.Context, loc *models.Location) *models.MarineConditions {
	params := coordParams(loc)
	params["hourly"] = marineFields

	var body marineResponse
	if err := c.get(ctx, metrics.EndpointMarine, c.marineURL, params, &body); err != nil {
		c.l.Warning("marine data unavailable", map[string]any{
			"location": loc.Name,
			"coords":   loc.Coordinates(),
			"err":      err.Error(),
		})
		return nil
	}

	h := body.Hourly
	if len(h.WaveHeight) == 0 {
		c.l.Warning("marine data empty", map[string]any{
			"location": loc.Name,
			"coords":   loc.Coordinates(),
		})
		return nil
	}

	last := len(h.WaveHeight) - 1
	return &models.MarineConditions{
		WaveHeightM:     at(h.WaveHeight, last),
		SeaTempC:        at(h.SeaSurfaceTemp, last),
		WindWaveHeightM: at(h.WindWaveHeight, last),
	}
}

func at(series []*float64, i int) *float64 {
	if i < 0 || i >= len(series) {
		return nil
	}
	return series[i]
}
