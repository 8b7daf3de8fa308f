package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/logger"
	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/search"
	"github.com/ngmaloney/weather-terminal/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: $CONFIG_FILE or config/config.yaml)")
	flag.Parse()

	cnf, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, cnf.LogLevel, os.Stdout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	client := openmeteo.NewClient(openmeteo.Options{
		GeocodingURL: cnf.GeocodingURL,
		ForecastURL:  cnf.ForecastURL,
		MarineURL:    cnf.MarineURL,
		Timeout:      cnf.HTTPTimeout,
		Logger:       l,
		Metrics:      m,
	})
	service := search.NewService(client, client, client, l, m)

	app := web.InitFiberServer(cnf.AppName)
	web.NewRouter(app, service, reg, l, time.Now)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err = serve(app, ":"+cnf.Port, sigCh, l)
	signal.Stop(sigCh)
	_ = l.Stop()
	if err != nil {
		os.Exit(1)
	}
}

// serve runs app until a signal arrives on stop or the listener fails, then
// shuts it down. A listener failure is returned.
func serve(app *fiber.App, addr string, stop <-chan os.Signal, l *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	l.Info("application started successfully", map[string]any{"addr": addr})

	select {
	case sig := <-stop:
		l.Info("received shutdown signal", map[string]any{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			l.Error(err, map[string]any{"msg": "cannot run the server", "addr": addr})
			return err
		}
		l.Warning("server stopped")
		return nil
	}

	l.Warning("stopping application services")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
