package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jask/jaskweather/internal/domain"
)

// Cache is the write side of the weather cache.
type Cache interface {
	Upsert(ctx context.Context, w domain.Weather) error
}

type city struct {
	ID   int
	Name string
	Base float64 // typical temperature, °C
}

var cities = []city{
	{2988507, "Paris", 14},
	{1850147, "Tokyo", 17},
	{2158177, "Melbourne", 16},
	{2643743, "London", 11},
	{5128581, "New York", 13},
	{3448439, "São Paulo", 21},
	{2950159, "Berlin", 10},
	{292223, "Dubai", 29},
}

var conditions = []struct {
	Main, Description, Icon string
}{
	{"Clear", "clear sky", "01d"},
	{"Clouds", "scattered clouds", "03d"},
	{"Clouds", "broken clouds", "04d"},
	{"Rain", "light rain", "10d"},
	{"Drizzle", "light intensity drizzle", "09d"},
	{"Thunderstorm", "thunderstorm", "11d"},
	{"Mist", "mist", "50d"},
}

// Cities returns the sample weather without writing it anywhere. The same
// seed gives the same rows.
func Cities(seed uint64, now time.Time) []domain.Weather {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]domain.Weather, 0, len(cities))
	for _, c := range cities {
		cond := conditions[r.IntN(len(conditions))]
		out = append(out, domain.Weather{
			CityID:      c.ID,
			CityName:    c.Name,
			Temperature: c.Base + float64(r.IntN(120)-60)/10,
			Condition:   cond.Main,
			IconURL:     fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", cond.Icon),
			Description: cond.Description,
			Humidity:    30 + r.IntN(65),
			WindSpeed:   float64(r.IntN(150)) / 10,
			ObservedAt:  now.Add(-time.Duration(r.IntN(60)) * time.Minute).Truncate(time.Second).UTC(),
		})
	}
	return out
}

// Seed writes the sample cities into cache.
func Seed(ctx context.Context, cache Cache, seed uint64) (int, error) {
	rows := Cities(seed, time.Now())
	for _, w := range rows {
		if err := cache.Upsert(ctx, w); err != nil {
			return 0, fmt.Errorf("seed %s: %w", w.CityName, err)
		}
	}
	return len(rows), nil
}
