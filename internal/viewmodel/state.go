package viewmodel

import "github.com/jask/jaskweather/internal/domain"

// State is what the screen renders.
type State interface{ isState() }

type Loading struct{}

// ShowWeather displays Weather, with a refresh indicator while
// IsRefreshing.
type ShowWeather struct {
	Weather      domain.Weather
	IsRefreshing bool
}

// NoCachedCity is shown before the first search.
type NoCachedCity struct{}

type Failure struct{ Reason error }

func (Loading) isState()      {}
func (ShowWeather) isState()  {}
func (NoCachedCity) isState() {}
func (Failure) isState()      {}

// Effect is a one-shot UI event.
type Effect interface{ isEffect() }

// FailureSnackbar asks the screen to briefly show Failure.
type FailureSnackbar struct{ Failure error }

func (FailureSnackbar) isEffect() {}
