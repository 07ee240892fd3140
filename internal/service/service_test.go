package service

import (
	"context"
	"io"
	"iter"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskweather/internal/database"
	"github.com/jask/jaskweather/internal/database/repository"
	"github.com/jask/jaskweather/internal/domain"
	"github.com/jask/jaskweather/internal/prefs"
	"github.com/jask/jaskweather/internal/viewmodel"
)

var (
	paris = domain.Weather{
		CityID: 2988507, CityName: "Paris", Temperature: 18.5, Condition: "Clouds",
		Description: "broken clouds", Humidity: 70, WindSpeed: 3.2,
		ObservedAt: time.Unix(1760000000, 0).UTC(),
	}
	tokyo = domain.Weather{
		CityID: 1850147, CityName: "Tokyo", Temperature: 24, Condition: "Clear",
		Description: "clear sky", Humidity: 55, WindSpeed: 1.5,
		ObservedAt: time.Unix(1760000300, 0).UTC(),
	}
)

type fakeRemote struct {
	mu    sync.Mutex
	known map[string]domain.Weather
	err   error
	calls atomic.Int32
}

func newFakeRemote(ws ...domain.Weather) *fakeRemote {
	f := &fakeRemote{known: map[string]domain.Weather{}}
	for _, w := range ws {
		f.known[w.CityName] = w
	}
	return f
}

func (f *fakeRemote) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeRemote) CurrentByName(ctx context.Context, city string) (domain.Weather, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Weather{}, f.err
	}
	if w, ok := f.known[city]; ok {
		return w, nil
	}
	return domain.Weather{}, domain.ErrCityNotFound
}

func (f *fakeRemote) CurrentByID(ctx context.Context, cityID int) (domain.Weather, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Weather{}, f.err
	}
	for _, w := range f.known {
		if w.CityID == cityID {
			return w, nil
		}
	}
	return domain.Weather{}, domain.ErrCityNotFound
}

type testEnv struct {
	remote     *fakeRemote
	repo       *repository.WeatherRepo
	prefs      *prefs.Store
	svc        *WeatherService
	interactor *WeatherInteractor
}

func newTestEnv(t *testing.T, remote *fakeRemote) *testEnv {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p, err := prefs.Open(filepath.Join(dir, "prefs.json"))
	require.NoError(t, err)

	repo := repository.NewWeatherRepo(db)
	svc := &WeatherService{Remote: remote, Cache: repo}
	return &testEnv{
		remote: remote,
		repo:   repo,
		prefs:  p,
		svc:    svc,
		interactor: &WeatherInteractor{
			Weather:   svc,
			Selection: p,
			Logger:    log.New(io.Discard, "", 0),
		},
	}
}

// stream drains seq in the background until ctx ends.
func stream(ctx context.Context, seq iter.Seq[viewmodel.Result]) <-chan viewmodel.Result {
	ch := make(chan viewmodel.Result, 16)
	go func() {
		defer close(ch)
		for r := range seq {
			select {
			case ch <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func next(t *testing.T, ch <-chan viewmodel.Result) viewmodel.Result {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "stream ended")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
		return nil
	}
}

func collect(seq iter.Seq[viewmodel.Result]) []viewmodel.Result {
	var out []viewmodel.Result
	for r := range seq {
		out = append(out, r)
	}
	return out
}
