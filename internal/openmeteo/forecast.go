package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	dateLayout    = "2006-01-02"
	historyWindow = 7
	missingCode   = -1
	currentFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,surface_pressure"
	dailyFields   = "temperature_2m_max,temperature_2m_min,weather_code"
)

type currentResponse struct {
	Current struct {
		Temperature     float64  `json:"temperature_2m"`
		Humidity        float64  `json:"relative_humidity_2m"`
		WeatherCode     int      `json:"weather_code"`
		WindSpeed       *float64 `json:"wind_speed_10m"`
		SurfacePressure *float64 `json:"surface_pressure"`
	} `json:"current"`
}

type dailyResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		TempMax     []*float64 `json:"temperature_2m_max"`
		TempMin     []*float64 `json:"temperature_2m_min"`
		WeatherCode []*int     `json:"weather_code"`
	} `json:"daily"`
}

// FetchCurrent returns the instantaneous conditions at loc in its local
// timezone.
func (c *Client) FetchCurrent(ctx context.Context, loc *models.Location) (*models.CurrentConditions, error) {
	params := coordParams(loc)
	params["current"] = currentFields

	var body currentResponse
	if err := c.get(ctx, metrics.EndpointCurrent, c.forecastURL, params, &body); err != nil {
		return nil, models.NewSearchError(models.KindCurrentUnavailable, err)
	}

	return &models.CurrentConditions{
		TemperatureC: body.Current.Temperature,
		HumidityPct:  body.Current.Humidity,
		WeatherCode:  body.Current.WeatherCode,
		WindSpeedKmh: body.Current.WindSpeed,
		PressureHpa:  body.Current.SurfacePressure,
	}, nil
}

// FetchHistorical returns the daily series for the window ending today,
// oldest first, capped at models.MaxHistoricalDays entries.
func (c *Client) FetchHistorical(ctx context.Context, loc *models.Location) ([]models.HistoricalDay, error) {
	start, end := historyRange(c.now())

	params := coordParams(loc)
	params["daily"] = dailyFields
	params["start_date"] = start
	params["end_date"] = end

	var body dailyResponse
	if err := c.get(ctx, metrics.EndpointHistorical, c.forecastURL, params, &body); err != nil {
		return nil, models.NewSearchError(models.KindHistoricalUnavailable, err)
	}

	days, err := zipDaily(body)
	if err != nil {
		return nil, models.NewSearchError(models.KindHistoricalUnavailable, err)
	}
	return days, nil
}

func historyRange(now time.Time) (start, end string) {
	return now.AddDate(0, 0, -historyWindow).Format(dateLayout), now.Format(dateLayout)
}

// zipDaily pairs the parallel daily arrays by index, stopping at the
// shortest one. Null temperatures stay nil and a null weather code maps to
// missingCode.
func zipDaily(body dailyResponse) ([]models.HistoricalDay, error) {
	d := body.Daily
	n := min(len(d.Time), len(d.TempMax), len(d.TempMin), len(d.WeatherCode), models.MaxHistoricalDays)

	days := make([]models.HistoricalDay, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(dateLayout, d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("parsing daily date %q: %w", d.Time[i], err)
		}
		days = append(days, models.HistoricalDay{
			Date:        date,
			MaxTempC:    d.TempMax[i],
			MinTempC:    d.TempMin[i],
			WeatherCode: codeOr(d.WeatherCode[i], missingCode),
		})
	}
	return days, nil
}

func codeOr(code *int, fallback int) int {
	if code == nil {
		return fallback
	}
	return *code
}
