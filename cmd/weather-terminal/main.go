package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/logger"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/search"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: $CONFIG_FILE or config/config.yaml)")
	layout := flag.String("layout", "", "Search layout: global (one search bar) or cards (one search box per card)")
	city := flag.String("city", "", "Search for this city as soon as the application starts")
	flag.Parse()

	cnf, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *layout != "" {
		cnf.Layout = config.NormalizeLayout(*layout)
		if err := cnf.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cnf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, cnf.LogLevel, logFile)
	defer func() { _ = l.Stop() }()

	client := openmeteo.NewClient(openmeteo.Options{
		GeocodingURL: cnf.GeocodingURL,
		ForecastURL:  cnf.ForecastURL,
		MarineURL:    cnf.MarineURL,
		Timeout:      cnf.HTTPTimeout,
		Logger:       l,
	})
	service := search.NewService(client, client, client, l, nil)

	uiLayout := ui.LayoutGlobal
	if cnf.Layout == config.LayoutCards {
		uiLayout = ui.LayoutCards
	}

	l.Info("application started", map[string]any{"layout": cnf.Layout})

	p := tea.NewProgram(ui.NewModel(ui.Options{
		Layout:       uiLayout,
		Searcher:     service,
		DiscardStale: cnf.DiscardStale,
		InitialQuery: *city,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		l.Error(err)
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
