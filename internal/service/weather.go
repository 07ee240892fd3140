package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jask/jaskweather/internal/domain"
)

// WeatherSource fetches current conditions from the network.
type WeatherSource interface {
	CurrentByName(ctx context.Context, city string) (domain.Weather, error)
	CurrentByID(ctx context.Context, cityID int) (domain.Weather, error)
}

// WeatherCache stores the latest snapshot per city.
type WeatherCache interface {
	Upsert(ctx context.Context, w domain.Weather) error
	ListCityNames(ctx context.Context) ([]string, error)
	Observe(ctx context.Context, cityID int) <-chan domain.Weather
}

// WeatherService combines the remote source with the local cache. Every
// successful fetch is written to the cache before it is returned.
type WeatherService struct {
	Remote WeatherSource
	Cache  WeatherCache
}

// FetchByName fetches city by name. A CityNotFound error carries a
// suggestion when a cached city name is close to the query.
func (s *WeatherService) FetchByName(ctx context.Context, city string) (domain.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.Weather{}, domain.New(domain.CodeInvalidInput, "Enter a city name.")
	}
	w, err := s.Remote.CurrentByName(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			return domain.Weather{}, s.withSuggestion(ctx, city, err)
		}
		return domain.Weather{}, err
	}
	return w, s.store(ctx, w)
}

func (s *WeatherService) FetchByID(ctx context.Context, cityID int) (domain.Weather, error) {
	if cityID <= 0 {
		return domain.Weather{}, domain.New(domain.CodeInvalidInput, fmt.Sprintf("invalid city id %d", cityID))
	}
	w, err := s.Remote.CurrentByID(ctx, cityID)
	if err != nil {
		return domain.Weather{}, err
	}
	return w, s.store(ctx, w)
}

// Observe follows the cached row for cityID.
func (s *WeatherService) Observe(ctx context.Context, cityID int) <-chan domain.Weather {
	return s.Cache.Observe(ctx, cityID)
}

// Suggest returns the cached city name closest to query, or "".
func (s *WeatherService) Suggest(ctx context.Context, query string) string {
	names, err := s.Cache.ListCityNames(ctx)
	if err != nil {
		return ""
	}
	return closest(query, names)
}

func (s *WeatherService) store(ctx context.Context, w domain.Weather) error {
	if err := s.Cache.Upsert(ctx, w); err != nil {
		return domain.Wrap(domain.CodeUnknown, "cache weather", err)
	}
	return nil
}

func (s *WeatherService) withSuggestion(ctx context.Context, query string, err error) error {
	hint := s.Suggest(ctx, query)
	if hint == "" {
		return err
	}
	e := *domain.AsError(err)
	e.Suggestion = hint
	return &e
}
