// Package view turns fetched weather data into display-ready state. It has
// no terminal or HTTP dependencies; adapters read State and draw it.
package view

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/conditions"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/search"
)

const (
	NoHistoricalText = "No historical data available."
	NoMarineText     = "No marine data available for this location. Try a coastal city."
)

// Banner is the single error shown at a time. Panel is PanelNone for a
// search-wide error.
type Banner struct {
	Message string       `json:"message"`
	Panel   models.Panel `json:"panel"`
}

type CurrentView struct {
	Visible     bool   `json:"visible"`
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Pressure    string `json:"pressure"`
}

type HistoricalRow struct {
	Label     string `json:"label"`
	MaxTemp   string `json:"max_temp"`
	MinTemp   string `json:"min_temp"`
	Condition string `json:"condition"`
}

type HistoricalView struct {
	Visible   bool            `json:"visible"`
	Rows      []HistoricalRow `json:"rows"`
	EmptyText string          `json:"empty_text,omitempty"`
}

// MarineView.Wind is read from the wind-wave height series, so it is a
// length rather than a speed.
type MarineView struct {
	Visible    bool   `json:"visible"`
	WaveHeight string `json:"wave_height,omitempty"`
	SeaTemp    string `json:"sea_temp,omitempty"`
	Wind       string `json:"wind,omitempty"`
	EmptyText  string `json:"empty_text,omitempty"`
}

// State is everything an adapter needs to draw the screen.
type State struct {
	Clock       string         `json:"clock,omitempty"`
	Loading     bool           `json:"loading"`
	Error       *Banner        `json:"error,omitempty"`
	ActivePanel models.Panel   `json:"active_panel"`
	Current     CurrentView    `json:"current"`
	Historical  HistoricalView `json:"historical"`
	Marine      MarineView     `json:"marine"`
}

// RenderCurrent fills and shows the current-conditions panel.
func (s *State) RenderCurrent(data *models.CurrentConditions, loc *models.Location) {
	if data == nil {
		return
	}
	location := ""
	if loc != nil {
		location = loc.DisplayName()
	}
	s.Current = CurrentView{
		Visible:     true,
		Location:    location,
		Temperature: FormatTemperature(data.TemperatureC),
		Condition:   conditions.LabelFor(data.WeatherCode),
		Humidity:    FormatHumidity(data.HumidityPct),
		WindSpeed:   FormatWindSpeed(data.WindSpeedKmh),
		Pressure:    FormatPressure(data.PressureHpa),
	}
}

// RenderHistorical shows up to models.MaxHistoricalDays rows in input
// order, or the empty state when there are none.
func (s *State) RenderHistorical(days []models.HistoricalDay) {
	if len(days) == 0 {
		s.Historical = HistoricalView{Visible: true, EmptyText: NoHistoricalText}
		return
	}
	if len(days) > models.MaxHistoricalDays {
		days = days[:models.MaxHistoricalDays]
	}

	rows := make([]HistoricalRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, HistoricalRow{
			Label:     FormatDayLabel(d.Date),
			MaxTemp:   FormatDayTemperature(d.MaxTempC),
			MinTemp:   FormatDayTemperature(d.MinTempC),
			Condition: conditions.LabelFor(d.WeatherCode),
		})
	}
	s.Historical = HistoricalView{Visible: true, Rows: rows}
}

// RenderMarine shows the marine panel; nil data shows the coastal hint.
func (s *State) RenderMarine(data *models.MarineConditions) {
	if data == nil {
		s.Marine = MarineView{Visible: true, EmptyText: NoMarineText}
		return
	}
	s.Marine = MarineView{
		Visible:    true,
		WaveHeight: FormatMeters(data.WaveHeightM),
		SeaTemp:    FormatSeaTemperature(data.SeaTempC),
		Wind:       FormatMeters(data.WindWaveHeightM),
	}
}

// Reset hides every panel. The error banner is left alone.
func (s *State) Reset() {
	s.Current = CurrentView{}
	s.Historical = HistoricalView{}
	s.Marine = MarineView{}
}

// ResetPanel hides a single panel.
func (s *State) ResetPanel(p models.Panel) {
	switch p {
	case models.PanelCurrent:
		s.Current = CurrentView{}
	case models.PanelHistorical:
		s.Historical = HistoricalView{}
	case models.PanelMarine:
		s.Marine = MarineView{}
	}
}

// SetError replaces whatever error was showing.
func (s *State) SetError(msg string, panel models.Panel) {
	s.Error = &Banner{Message: msg, Panel: panel}
}

func (s *State) ClearError() {
	s.Error = nil
}

// ErrorFor returns the message scoped to panel, if that is the one showing.
func (s *State) ErrorFor(panel models.Panel) string {
	if s.Error == nil || s.Error.Panel != panel {
		return ""
	}
	return s.Error.Message
}

func (s *State) SetClock(now time.Time) {
	s.Clock = now.Format(ClockLayout)
}

// Apply renders a full search result: current and historical always,
// marine as data or as its empty state.
func (s *State) Apply(res *search.Result) {
	s.RenderCurrent(res.Current, res.Location)
	s.RenderHistorical(res.Historical)
	s.RenderMarine(res.Marine)
}

// ApplyPanel renders the one panel a per-card search fetched. Absent marine
// data also raises an error scoped to the marine panel.
func (s *State) ApplyPanel(res *search.Result, panel models.Panel) {
	switch panel {
	case models.PanelCurrent:
		s.RenderCurrent(res.Current, res.Location)
	case models.PanelHistorical:
		s.RenderHistorical(res.Historical)
	case models.PanelMarine:
		s.RenderMarine(res.Marine)
		if res.Marine == nil {
			s.SetError(NoMarineText, models.PanelMarine)
		}
	}
}
