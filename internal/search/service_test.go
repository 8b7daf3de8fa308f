package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/metrics"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

type mockGeocoder struct {
	loc   *models.Location
	err   error
	calls atomic.Int32
}

func (m *mockGeocoder) Resolve(ctx context.Context, name string) (*models.Location, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.loc, nil
}

type mockForecaster struct {
	current       *models.CurrentConditions
	currentErr    error
	historical    []models.HistoricalDay
	historicalErr error
	currentCalls  atomic.Int32
	historyCalls  atomic.Int32
}

func (m *mockForecaster) FetchCurrent(ctx context.Context, loc *models.Location) (*models.CurrentConditions, error) {
	m.currentCalls.Add(1)
	return m.current, m.currentErr
}

func (m *mockForecaster) FetchHistorical(ctx context.Context, loc *models.Location) ([]models.HistoricalDay, error) {
	m.historyCalls.Add(1)
	return m.historical, m.historicalErr
}

type mockMarine struct {
	marine  *models.MarineConditions
	release chan struct{}
	calls   atomic.Int32
}

func (m *mockMarine) FetchMarine(ctx context.Context, loc *models.Location) *models.MarineConditions {
	m.calls.Add(1)
	if m.release != nil {
		<-m.release
	}
	return m.marine
}

func float(v float64) *float64 { return &v }

var paris = &models.Location{Latitude: 48.85, Longitude: 2.35, Name: "Paris", Country: "France"}

func newFixture() (*mockGeocoder, *mockForecaster, *mockMarine) {
	return &mockGeocoder{loc: paris},
		&mockForecaster{
			current: &models.CurrentConditions{TemperatureC: 18.4, HumidityPct: 65, WeatherCode: 3},
			historical: []models.HistoricalDay{
				{Date: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), MaxTempC: float(10), MinTempC: float(2)},
			},
		},
		&mockMarine{marine: &models.MarineConditions{WaveHeightM: float(1.2)}}
}

func TestService_Search(t *testing.T) {
	geo, fc, mar := newFixture()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := NewService(geo, fc, mar, nil, m)

	res, err := svc.Search(context.Background(), "  Paris  ")
	require.NoError(t, err)

	assert.Equal(t, "Paris", res.Query)
	assert.Equal(t, paris, res.Location)
	assert.Equal(t, 18.4, res.Current.TemperatureC)
	assert.Len(t, res.Historical, 1)
	require.NotNil(t, res.Marine)
	assert.Equal(t, 1.2, *res.Marine.WaveHeightM)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InflightSearch))
}

func TestService_Search_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", " ", "\t  \n"} {
		geo, fc, mar := newFixture()
		svc := NewService(geo, fc, mar, nil, nil)

		res, err := svc.Search(context.Background(), q)

		assert.Nil(t, res)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
		assert.Equal(t, models.MsgValidation, models.UserMessage(err))
		assert.Equal(t, int32(0), geo.calls.Load())
		assert.Equal(t, int32(0), fc.currentCalls.Load())
		assert.Equal(t, int32(0), mar.calls.Load())
	}
}

func TestService_Search_NotFound(t *testing.T) {
	geo, fc, mar := newFixture()
	geo.err = models.NewSearchError(models.KindNotFound, nil)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := NewService(geo, fc, mar, nil, m)

	res, err := svc.Search(context.Background(), "Nowhereville123")

	assert.Nil(t, res)
	assert.Equal(t, "City not found. Please check the spelling and try again.", models.UserMessage(err))
	assert.Equal(t, int32(0), fc.currentCalls.Load())
	assert.Equal(t, int32(0), mar.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("not_found")))
}

func TestService_Search_MandatoryFailureSkipsMarineWait(t *testing.T) {
	tests := []struct {
		name string
		set  func(fc *mockForecaster)
		want models.ErrorKind
	}{
		{
			name: "current unavailable",
			set: func(fc *mockForecaster) {
				fc.current = nil
				fc.currentErr = models.NewSearchError(models.KindCurrentUnavailable, errors.New("status 500"))
			},
			want: models.KindCurrentUnavailable,
		},
		{
			name: "historical unavailable",
			set: func(fc *mockForecaster) {
				fc.historical = nil
				fc.historicalErr = models.NewSearchError(models.KindHistoricalUnavailable, errors.New("status 500"))
			},
			want: models.KindHistoricalUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo, fc, mar := newFixture()
			tt.set(fc)
			mar.release = make(chan struct{})
			defer close(mar.release)

			svc := NewService(geo, fc, mar, nil, nil)

			done := make(chan error, 1)
			go func() {
				_, err := svc.Search(context.Background(), "Paris")
				done <- err
			}()

			select {
			case err := <-done:
				assert.Equal(t, tt.want, models.KindOf(err))
			case <-time.After(2 * time.Second):
				t.Fatal("Search blocked on the marine fetch after a mandatory failure")
			}
		})
	}
}

func TestService_Search_MarineAbsentIsNotAnError(t *testing.T) {
	geo, fc, mar := newFixture()
	mar.marine = nil
	svc := NewService(geo, fc, mar, nil, nil)

	res, err := svc.Search(context.Background(), "Denver")
	require.NoError(t, err)
	assert.Nil(t, res.Marine)
	assert.NotNil(t, res.Current)
	assert.NotEmpty(t, res.Historical)
}

func TestService_Search_CancelledWhileWaitingForMarine(t *testing.T) {
	geo, fc, mar := newFixture()
	mar.release = make(chan struct{})
	defer close(mar.release)
	svc := NewService(geo, fc, mar, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := svc.Search(ctx, "Paris")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, models.MsgGeneric, models.UserMessage(err))
}

func TestService_SearchPanel(t *testing.T) {
	t.Run("current only", func(t *testing.T) {
		geo, fc, mar := newFixture()
		svc := NewService(geo, fc, mar, nil, nil)

		res, err := svc.SearchPanel(context.Background(), "Paris", models.PanelCurrent)
		require.NoError(t, err)
		assert.NotNil(t, res.Current)
		assert.Nil(t, res.Historical)
		assert.Nil(t, res.Marine)
		assert.Equal(t, int32(0), fc.historyCalls.Load())
		assert.Equal(t, int32(0), mar.calls.Load())
	})

	t.Run("historical only", func(t *testing.T) {
		geo, fc, mar := newFixture()
		svc := NewService(geo, fc, mar, nil, nil)

		res, err := svc.SearchPanel(context.Background(), "Paris", models.PanelHistorical)
		require.NoError(t, err)
		assert.Nil(t, res.Current)
		assert.Len(t, res.Historical, 1)
		assert.Equal(t, int32(0), fc.currentCalls.Load())
	})

	t.Run("marine absent", func(t *testing.T) {
		geo, fc, mar := newFixture()
		mar.marine = nil
		svc := NewService(geo, fc, mar, nil, nil)

		res, err := svc.SearchPanel(context.Background(), "Denver", models.PanelMarine)
		require.NoError(t, err)
		assert.Nil(t, res.Marine)
		assert.Equal(t, int32(0), fc.currentCalls.Load())
	})

	t.Run("current failure", func(t *testing.T) {
		geo, fc, mar := newFixture()
		fc.currentErr = models.NewSearchError(models.KindCurrentUnavailable, nil)
		svc := NewService(geo, fc, mar, nil, nil)

		res, err := svc.SearchPanel(context.Background(), "Paris", models.PanelCurrent)
		assert.Nil(t, res)
		assert.Equal(t, models.KindCurrentUnavailable, models.KindOf(err))
	})

	t.Run("empty query", func(t *testing.T) {
		geo, fc, mar := newFixture()
		svc := NewService(geo, fc, mar, nil, nil)

		_, err := svc.SearchPanel(context.Background(), "  ", models.PanelMarine)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
		assert.Equal(t, int32(0), geo.calls.Load())
	})

	t.Run("no panel", func(t *testing.T) {
		geo, fc, mar := newFixture()
		svc := NewService(geo, fc, mar, nil, nil)

		_, err := svc.SearchPanel(context.Background(), "Paris", models.PanelNone)
		require.Error(t, err)
		assert.Equal(t, int32(0), geo.calls.Load())
	})
}
