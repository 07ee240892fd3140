package remote

import (
	"fmt"
	"time"

	"github.com/jask/jaskweather/internal/domain"
)

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

type weatherResponse struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Main    mainBlock     `json:"main"`
	Weather []weatherInfo `json:"weather"`
	Wind    windBlock     `json:"wind"`
	DT      int64         `json:"dt"`
}

type mainBlock struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

type weatherInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

func (r weatherResponse) toDomain() domain.Weather {
	var info weatherInfo
	if len(r.Weather) > 0 {
		info = r.Weather[0]
	}
	return domain.Weather{
		CityID:      r.ID,
		CityName:    r.Name,
		Temperature: r.Main.Temp,
		Condition:   info.Main,
		IconURL:     iconURL(info.Icon),
		Description: info.Description,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
		ObservedAt:  time.Unix(r.DT, 0).UTC(),
	}
}

func iconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, code)
}
