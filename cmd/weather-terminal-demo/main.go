package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/search"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

// demoSearcher answers from canned data so the UI can be tried offline.
// Lisbon is coastal, Denver is landlocked, anything else is not found.
type demoSearcher struct {
	latency time.Duration
}

func (d demoSearcher) Search(ctx context.Context, query string) (*search.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewSearchError(models.KindValidation, nil)
	}

	select {
	case <-time.After(d.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	now := time.Now()
	switch strings.ToLower(query) {
	case "lisbon":
		return &search.Result{
			Query:      query,
			Location:   &models.Location{Latitude: 38.72, Longitude: -9.13, Name: "Lisbon", Region: "Lisbon", Country: "Portugal"},
			Current:    &models.CurrentConditions{TemperatureC: 21.6, HumidityPct: 58, WeatherCode: 1, WindSpeedKmh: ptr(14.2), PressureHpa: ptr(1016.4)},
			Historical: history(now, 19, []int{0, 1, 2, 2, 61, 3, 0}),
			Marine:     &models.MarineConditions{WaveHeightM: ptr(1.46), SeaTempC: ptr(17.8), WindWaveHeightM: ptr(0.4)},
		}, nil
	case "denver":
		return &search.Result{
			Query:      query,
			Location:   &models.Location{Latitude: 39.74, Longitude: -104.98, Name: "Denver", Region: "Colorado", Country: "United States"},
			Current:    &models.CurrentConditions{TemperatureC: 4.4, HumidityPct: 31, WeatherCode: 71, WindSpeedKmh: ptr(22.8)},
			Historical: history(now, 6, []int{3, 71, 73, 3, 0, 0, 1}),
		}, nil
	}
	return nil, models.NewSearchError(models.KindNotFound, nil)
}

func (d demoSearcher) SearchPanel(ctx context.Context, query string, panel models.Panel) (*search.Result, error) {
	res, err := d.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	switch panel {
	case models.PanelCurrent:
		res.Historical, res.Marine = nil, nil
	case models.PanelHistorical:
		res.Current, res.Marine = nil, nil
	case models.PanelMarine:
		res.Current, res.Historical = nil, nil
	}
	return res, nil
}

func history(now time.Time, base float64, codes []int) []models.HistoricalDay {
	days := make([]models.HistoricalDay, 0, len(codes))
	for i, code := range codes {
		days = append(days, models.HistoricalDay{
			Date:        now.AddDate(0, 0, i-len(codes)),
			MaxTempC:    ptr(base + float64(i%3)),
			MinTempC:    ptr(base - 6 + float64(i%2)),
			WeatherCode: code,
		})
	}
	return days
}

func ptr(v float64) *float64 { return &v }

// This demo shows the UI with canned data
func main() {
	layout := flag.String("layout", "global", "Search layout: global or cards")
	flag.Parse()

	uiLayout := ui.LayoutGlobal
	if config.NormalizeLayout(*layout) == config.LayoutCards {
		uiLayout = ui.LayoutCards
	}

	m := ui.NewModel(ui.Options{
		Layout:       uiLayout,
		Searcher:     demoSearcher{latency: 600 * time.Millisecond},
		InitialQuery: "Lisbon",
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
