package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

func TestClient_Resolve(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, http.StatusOK, `{
		"results": [
			{"latitude": 48.85, "longitude": 2.35, "name": "Paris", "country": "France", "admin1": "Île-de-France"},
			{"latitude": 33.66, "longitude": -95.55, "name": "Paris", "country": "United States", "admin1": "Texas"}
		]
	}`, func(r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Paris", q.Get("name"))
		assert.Equal(t, "1", q.Get("count"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "go-resty/"), "unexpected User-Agent %q", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	c := newTestClient(t, server, nil)
	loc, err := c.Resolve(context.Background(), "  Paris ")
	require.NoError(t, err)

	assert.Equal(t, 48.85, loc.Latitude)
	assert.Equal(t, 2.35, loc.Longitude)
	assert.Equal(t, "Paris", loc.Name)
	assert.Equal(t, "France", loc.Country)
	assert.Equal(t, "Île-de-France", loc.Region)
}

func TestClient_Resolve_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty results", `{"results": []}`},
		{"absent results", `{"generationtime_ms": 0.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(jsonHandler(t, http.StatusOK, tt.body, nil))
			defer server.Close()

			c := newTestClient(t, server, nil)
			loc, err := c.Resolve(context.Background(), "Nowhereville123")

			assert.Nil(t, loc)
			require.Error(t, err)
			assert.Equal(t, models.KindNotFound, models.KindOf(err))
			assert.Equal(t, models.MsgNotFound, err.Error())
		})
	}
}

func TestClient_Resolve_LookupFailed(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, http.StatusInternalServerError, `{"error": true}`, nil))
	defer server.Close()

	c := newTestClient(t, server, nil)
	_, err := c.Resolve(context.Background(), "Paris")

	require.Error(t, err)
	assert.Equal(t, models.KindLookupFailed, models.KindOf(err))
	assert.Equal(t, models.MsgLookupFailed, err.Error())
	assert.Contains(t, causeOf(err).Error(), "status 500")
}

func TestClient_Resolve_EmptyNameSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := newTestClient(t, server, nil)
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := c.Resolve(context.Background(), name)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
	}
	assert.Equal(t, int32(0), calls.Load())
}

func causeOf(err error) error {
	se := err.(*models.SearchError)
	return se.Unwrap()
}
