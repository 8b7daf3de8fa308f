package models

import "time"

// MaxHistoricalDays caps the daily history kept for a location.
const MaxHistoricalDays = 7

// CurrentConditions holds the instantaneous "current" block of a forecast.
type CurrentConditions struct {
	TemperatureC float64  `json:"temperature_c"`
	HumidityPct  float64  `json:"humidity_pct"`
	WeatherCode  int      `json:"weather_code"`
	WindSpeedKmh *float64 `json:"wind_speed_kmh,omitempty"`
	PressureHpa  *float64 `json:"pressure_hpa,omitempty"`
}

// HistoricalDay is one entry of the daily series, oldest first. A nil
// temperature means the API returned null for that day.
type HistoricalDay struct {
	Date        time.Time `json:"date"`
	MaxTempC    *float64  `json:"max_temp_c,omitempty"`
	MinTempC    *float64  `json:"min_temp_c,omitempty"`
	WeatherCode int       `json:"weather_code"`
}

// MarineConditions is the most recent hourly marine sample. A nil
// *MarineConditions means the location has no marine data at all; individual
// nil fields mean that one value was missing from the sample.
type MarineConditions struct {
	WaveHeightM     *float64 `json:"wave_height_m,omitempty"`
	SeaTempC        *float64 `json:"sea_temp_c,omitempty"`
	WindWaveHeightM *float64 `json:"wind_wave_height_m,omitempty"`
}
