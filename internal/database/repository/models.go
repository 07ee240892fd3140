package repository

import (
	"errors"
	"time"

	"github.com/jask/jaskweather/internal/domain"
)

// ErrNotFound is returned when no cached row exists.
var ErrNotFound = errors.New("repository: not found")

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWeather reads the column order used by WeatherRepo.Get.
func scanWeather(row rowScanner) (domain.Weather, error) {
	var (
		w        domain.Weather
		observed int64
	)
	if err := row.Scan(&w.CityID, &w.CityName, &w.Temperature, &w.Condition, &w.IconURL,
		&w.Description, &w.Humidity, &w.WindSpeed, &observed); err != nil {
		return domain.Weather{}, err
	}
	w.ObservedAt = time.Unix(observed, 0).UTC()
	return w, nil
}
