package viewmodel

import "github.com/jask/jaskweather/internal/domain"

// Result is one step reported by the interactor.
type Result interface{ isResult() }

type (
	LoadingResult       struct{}
	ShowWeatherResult   struct{ Weather domain.Weather }
	FailureResult       struct{ Err error }
	RefreshingResult    struct{}
	RefreshDoneResult   struct{}
	RefreshFailedResult struct{ Err error }
	NoCachedCityResult  struct{}
)

func (LoadingResult) isResult()       {}
func (ShowWeatherResult) isResult()   {}
func (FailureResult) isResult()       {}
func (RefreshingResult) isResult()    {}
func (RefreshDoneResult) isResult()   {}
func (RefreshFailedResult) isResult() {}
func (NoCachedCityResult) isResult()  {}
