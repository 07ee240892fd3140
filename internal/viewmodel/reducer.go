package viewmodel

import "github.com/jask/jaskweather/internal/arch"

// Reduce folds r into prev.
func Reduce(prev State, r Result, effects arch.Emitter[Effect]) State {
	switch r := r.(type) {
	case LoadingResult:
		return Loading{}
	case ShowWeatherResult:
		return ShowWeather{Weather: r.Weather}
	case NoCachedCityResult:
		return NoCachedCity{}
	case FailureResult:
		effects.Emit(FailureSnackbar{Failure: r.Err})
		return Failure{Reason: r.Err}
	case RefreshingResult:
		if sw, ok := prev.(ShowWeather); ok {
			sw.IsRefreshing = true
			return sw
		}
	case RefreshDoneResult:
		if sw, ok := prev.(ShowWeather); ok {
			sw.IsRefreshing = false
			return sw
		}
	case RefreshFailedResult:
		effects.Emit(FailureSnackbar{Failure: r.Err})
	}
	return prev
}
