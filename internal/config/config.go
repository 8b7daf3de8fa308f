// Package config loads runtime settings from built-in defaults, an optional
// YAML file and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

const (
	LayoutGlobal = "global"
	LayoutCards  = "cards"

	DefaultConfigFile = "config/config.yaml"
)

type Config struct {
	AppName      string        `yaml:"app_name" envconfig:"APP_NAME"`
	AppEnv       string        `yaml:"app_env" envconfig:"APP_ENV"`
	LogLevel     string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile      string        `yaml:"log_file" envconfig:"LOG_FILE"`
	Layout       string        `yaml:"layout" envconfig:"LAYOUT"`
	GeocodingURL string        `yaml:"geocoding_url" envconfig:"GEOCODING_URL"`
	ForecastURL  string        `yaml:"forecast_url" envconfig:"FORECAST_URL"`
	MarineURL    string        `yaml:"marine_url" envconfig:"MARINE_URL"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`
	DiscardStale bool          `yaml:"discard_stale" envconfig:"DISCARD_STALE"`
	Port         string        `yaml:"port" envconfig:"PORT"`
}

// Default returns the settings used when neither file nor environment
// provide a value.
func Default() Config {
	return Config{
		AppName:      "weather-terminal",
		AppEnv:       "development",
		LogLevel:     "info",
		LogFile:      "weather-terminal.log",
		Layout:       LayoutGlobal,
		GeocodingURL: openmeteo.DefaultGeocodingURL,
		ForecastURL:  openmeteo.DefaultForecastURL,
		MarineURL:    openmeteo.DefaultMarineURL,
		Port:         "8080",
	}
}

// Load reads path (when it exists) over the defaults, then applies
// environment overrides. An empty path falls back to CONFIG_FILE or
// DefaultConfigFile.
func Load(path string) (*Config, error) {
	cnf := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	yamlData, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	cnf.Layout = NormalizeLayout(cnf.Layout)

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

// NormalizeLayout lowercases and trims a layout name from a file, the
// environment or the command line.
func NormalizeLayout(layout string) string {
	return strings.ToLower(strings.TrimSpace(layout))
}

func (c *Config) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("app_name must not be empty")
	}
	if c.Layout != LayoutGlobal && c.Layout != LayoutCards {
		return fmt.Errorf("layout must be one of %s, %s", LayoutGlobal, LayoutCards)
	}
	for key, value := range map[string]string{
		"geocoding_url": c.GeocodingURL,
		"forecast_url":  c.ForecastURL,
		"marine_url":    c.MarineURL,
	} {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL", key)
		}
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	return nil
}
