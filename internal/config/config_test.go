package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cnf, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "weather-terminal", cnf.AppName)
	assert.Equal(t, "development", cnf.AppEnv)
	assert.Equal(t, "info", cnf.LogLevel)
	assert.Equal(t, LayoutGlobal, cnf.Layout)
	assert.Equal(t, openmeteo.DefaultGeocodingURL, cnf.GeocodingURL)
	assert.Equal(t, openmeteo.DefaultForecastURL, cnf.ForecastURL)
	assert.Equal(t, openmeteo.DefaultMarineURL, cnf.MarineURL)
	assert.Equal(t, time.Duration(0), cnf.HTTPTimeout)
	assert.False(t, cnf.DiscardStale)
	assert.Equal(t, "8080", cnf.Port)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeYAML(t, `
app_name: coastal
layout: cards
http_timeout: 5s
discard_stale: true
`)

	cnf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "coastal", cnf.AppName)
	assert.Equal(t, LayoutCards, cnf.Layout)
	assert.Equal(t, 5*time.Second, cnf.HTTPTimeout)
	assert.True(t, cnf.DiscardStale)
	// untouched keys keep their defaults
	assert.Equal(t, "8080", cnf.Port)
	assert.Equal(t, "info", cnf.LogLevel)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, "layout: cards\nport: \"9000\"\n")
	t.Setenv("LAYOUT", "GLOBAL")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cnf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, LayoutGlobal, cnf.Layout)
	assert.Equal(t, "9090", cnf.Port)
	assert.Equal(t, "debug", cnf.LogLevel)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeYAML(t, "app_name: from-env-path\n")
	t.Setenv("CONFIG_FILE", path)

	cnf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env-path", cnf.AppName)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, "layout: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidLayout(t *testing.T) {
	t.Setenv("LAYOUT", "sideways")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout must be one of global, cards")
}

func TestNormalizeLayout(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cards", LayoutCards},
		{"Cards", LayoutCards},
		{"  GLOBAL ", LayoutGlobal},
		{"tabs", "tabs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLayout(tt.in), tt.in)
	}

	cnf := Default()
	cnf.Layout = NormalizeLayout(" Cards")
	assert.NoError(t, cnf.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty app name", func(c *Config) { c.AppName = "" }, "app_name"},
		{"bad forecast url", func(c *Config) { c.ForecastURL = "ftp://example.com" }, "forecast_url"},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }, "http_timeout"},
		{"empty port", func(c *Config) { c.Port = "" }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
