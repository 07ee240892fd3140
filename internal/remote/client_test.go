package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskweather/internal/domain"
)

const parisJSON = `{
  "id": 2988507,
  "name": "Paris",
  "main": {"temp": 14.2, "humidity": 71},
  "weather": [{"main": "Clouds", "description": "broken clouds", "icon": "04d"}],
  "wind": {"speed": 3.6},
  "dt": 1760000000
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentByNameMapsResponse(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(parisJSON))
	})

	c := NewClient(srv.URL, "secret")
	w, err := c.CurrentByName(context.Background(), "  Paris ")
	require.NoError(t, err)
	require.Equal(t, domain.Weather{
		CityID:      2988507,
		CityName:    "Paris",
		Temperature: 14.2,
		Condition:   "Clouds",
		IconURL:     "https://openweathermap.org/img/wn/04d@2x.png",
		Description: "broken clouds",
		Humidity:    71,
		WindSpeed:   3.6,
		ObservedAt:  time.Unix(1760000000, 0).UTC(),
	}, w)
}

func TestCurrentByIDSendsIDAndUnits(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2988507", r.URL.Query().Get("id"))
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(parisJSON))
	})

	c := NewClient(srv.URL+"/", "secret", WithUnits("imperial"))
	w, err := c.CurrentByID(context.Background(), 2988507)
	require.NoError(t, err)
	require.Equal(t, "Paris", w.CityName)
}

func TestMissingIconGivesEmptyURL(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "name": "Nowhere Springs", "weather": [], "dt": 0}`))
	})

	w, err := NewClient(srv.URL, "k").CurrentByName(context.Background(), "Nowhere Springs")
	require.NoError(t, err)
	require.Empty(t, w.IconURL)
	require.Empty(t, w.Condition)
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   *domain.Error
	}{
		{http.StatusUnauthorized, domain.ErrAPIKey},
		{http.StatusNotFound, domain.ErrCityNotFound},
		{http.StatusInternalServerError, domain.ErrServer},
		{http.StatusServiceUnavailable, domain.ErrServer},
		{http.StatusTeapot, domain.ErrUnknown},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := NewClient(srv.URL, "k").CurrentByName(context.Background(), "x")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestServerErrorKeepsStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := NewClient(srv.URL, "k").CurrentByID(context.Background(), 1)
	require.Equal(t, http.StatusBadGateway, domain.AsError(err).Status)
}

func TestMissingAPIKey(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", " ").CurrentByName(context.Background(), "Paris")
	require.ErrorIs(t, err, domain.ErrAPIKey)
}

func TestUndecodableBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})
	_, err := NewClient(srv.URL, "k").CurrentByName(context.Background(), "Paris")
	require.ErrorIs(t, err, domain.ErrUnknown)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	c := NewClient(srv.URL, "k", WithTimeout(20*time.Millisecond))
	_, err := c.CurrentByName(context.Background(), "Paris")
	require.ErrorIs(t, err, domain.ErrTimeout)
}

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewClient(addr, "k").CurrentByName(context.Background(), "Paris")
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCallerCancellationIsNotClassified(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := NewClient(srv.URL, "k").CurrentByName(ctx, "Paris")
	require.Equal(t, context.Canceled, err)
}
