package viewmodel

import "github.com/jask/jaskweather/internal/arch"

const (
	CategorySearch  arch.Category = "search_city"
	CategoryRefresh arch.Category = "refresh_weather"
)

// Action is what the screen asks for.
type Action interface {
	arch.Action
	isAction()
}

// SearchCity looks up Name and makes it the selected city.
type SearchCity struct{ Name string }

// RefreshWeather refetches the city on screen.
type RefreshWeather struct{ Name string }

func (SearchCity) Category() arch.Category     { return CategorySearch }
func (RefreshWeather) Category() arch.Category { return CategoryRefresh }

func (SearchCity) isAction()     {}
func (RefreshWeather) isAction() {}

// Policy admits a new search over an old one and ignores refreshes while
// one is running.
func Policy(a Action) arch.Policy {
	switch a.(type) {
	case RefreshWeather:
		return arch.Skip
	default:
		return arch.CancelAndStartNew
	}
}
