package service

import (
	"context"
	"iter"
	"log"

	"github.com/jask/jaskweather/internal/domain"
	"github.com/jask/jaskweather/internal/viewmodel"
)

// CitySelection remembers the last searched city. Zero means none.
type CitySelection interface {
	SetLastCityID(id int) error
	Observe(ctx context.Context) <-chan int
}

// WeatherInteractor turns weather screen actions into results.
type WeatherInteractor struct {
	Weather   *WeatherService
	Selection CitySelection
	Logger    *log.Logger
}

var _ viewmodel.Interactor = (*WeatherInteractor)(nil)

// InitResults follows the selected city. The first selection is fetched
// from the network before its cached row is followed; later selections come
// from searches that already fetched and only follow the cache. Changing
// the selection stops following the previous city.
func (i *WeatherInteractor) InitResults(ctx context.Context) iter.Seq[viewmodel.Result] {
	return func(yield func(viewmodel.Result) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		ids := i.Selection.Observe(ctx)
		var (
			inner     <-chan viewmodel.Result
			stopInner = func() {}
			first     = true
		)
		defer func() { stopInner() }()

		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-ids:
				if !ok {
					return
				}
				stopInner()
				var innerCtx context.Context
				innerCtx, stopInner = context.WithCancel(ctx)
				inner = i.follow(innerCtx, id, first)
				first = false
			case r, ok := <-inner:
				if !ok {
					inner = nil
					continue
				}
				if ctx.Err() != nil || !yield(r) {
					return
				}
			}
		}
	}
}

// follow streams results for one selected city until ctx ends.
func (i *WeatherInteractor) follow(ctx context.Context, cityID int, fetch bool) <-chan viewmodel.Result {
	out := make(chan viewmodel.Result)
	send := func(r viewmodel.Result) bool {
		select {
		case out <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		if cityID == 0 {
			send(viewmodel.NoCachedCityResult{})
			return
		}
		if fetch {
			if !send(viewmodel.LoadingResult{}) {
				return
			}
			if _, err := i.Weather.FetchByID(ctx, cityID); err != nil {
				if ctx.Err() != nil {
					return
				}
				i.logf("service: fetch city %d: %v", cityID, err)
				if !send(viewmodel.FailureResult{Err: err}) {
					return
				}
			}
		}
		for w := range i.Weather.Observe(ctx, cityID) {
			if !send(viewmodel.ShowWeatherResult{Weather: w}) {
				return
			}
		}
	}()
	return out
}

func (i *WeatherInteractor) ActionToResult(ctx context.Context, action viewmodel.Action) iter.Seq[viewmodel.Result] {
	switch a := action.(type) {
	case viewmodel.SearchCity:
		return i.search(ctx, a.Name)
	case viewmodel.RefreshWeather:
		return i.refresh(ctx, a.Name)
	default:
		return func(yield func(viewmodel.Result) bool) {
			yield(viewmodel.FailureResult{Err: domain.New(domain.CodeUnknown, "unsupported action")})
		}
	}
}

func (i *WeatherInteractor) search(ctx context.Context, name string) iter.Seq[viewmodel.Result] {
	return func(yield func(viewmodel.Result) bool) {
		emit := guard(ctx, yield)
		if !emit(viewmodel.LoadingResult{}) {
			return
		}
		w, err := i.Weather.FetchByName(ctx, name)
		if err != nil {
			if ctx.Err() == nil {
				i.logf("service: search %q: %v", name, err)
			}
			emit(viewmodel.FailureResult{Err: err})
			return
		}
		if err := i.Selection.SetLastCityID(w.CityID); err != nil {
			i.logf("service: remember city %d: %v", w.CityID, err)
		}
		emit(viewmodel.ShowWeatherResult{Weather: w})
	}
}

func (i *WeatherInteractor) refresh(ctx context.Context, name string) iter.Seq[viewmodel.Result] {
	return func(yield func(viewmodel.Result) bool) {
		emit := guard(ctx, yield)
		if !emit(viewmodel.RefreshingResult{}) {
			return
		}
		if _, err := i.Weather.FetchByName(ctx, name); err != nil {
			if ctx.Err() == nil {
				i.logf("service: refresh %q: %v", name, err)
			}
			if !emit(viewmodel.RefreshFailedResult{Err: err}) {
				return
			}
		}
		emit(viewmodel.RefreshDoneResult{})
	}
}

// guard drops results once ctx is done.
func guard(ctx context.Context, yield func(viewmodel.Result) bool) func(viewmodel.Result) bool {
	return func(r viewmodel.Result) bool {
		if ctx.Err() != nil {
			return false
		}
		return yield(r)
	}
}

func (i *WeatherInteractor) logf(format string, args ...any) {
	if i.Logger != nil {
		i.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
