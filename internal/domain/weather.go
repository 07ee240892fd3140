// Package domain holds the weather model shared by every layer.
package domain

import "time"

// Weather is a current-conditions snapshot for one city.
type Weather struct {
	CityID      int
	CityName    string
	Temperature float64
	Condition   string
	IconURL     string
	Description string
	Humidity    int
	WindSpeed   float64
	ObservedAt  time.Time
}

// Equal compares snapshots field by field; ObservedAt is compared as an
// instant.
func (w Weather) Equal(o Weather) bool {
	return w.CityID == o.CityID &&
		w.CityName == o.CityName &&
		w.Temperature == o.Temperature &&
		w.Condition == o.Condition &&
		w.IconURL == o.IconURL &&
		w.Description == o.Description &&
		w.Humidity == o.Humidity &&
		w.WindSpeed == o.WindSpeed &&
		w.ObservedAt.Equal(o.ObservedAt)
}
