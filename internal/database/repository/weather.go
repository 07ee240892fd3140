package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jask/jaskweather/internal/domain"
)

// WeatherRepo caches the latest snapshot per city.
type WeatherRepo struct {
	db      *sql.DB
	changes *notifier
	now     func() time.Time
}

func NewWeatherRepo(db *sql.DB) *WeatherRepo {
	return &WeatherRepo{db: db, changes: newNotifier(), now: time.Now}
}

// Upsert stores w and wakes observers of its city.
func (r *WeatherRepo) Upsert(ctx context.Context, w domain.Weather) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO weather(
	 city_id, city_name, temperature, condition, icon_url, description,
	 humidity, wind_speed, observed_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(city_id) DO UPDATE SET
	 city_name=excluded.city_name, temperature=excluded.temperature,
	 condition=excluded.condition, icon_url=excluded.icon_url,
	 description=excluded.description, humidity=excluded.humidity,
	 wind_speed=excluded.wind_speed, observed_at=excluded.observed_at,
	 updated_at=excluded.updated_at;
	`,
		w.CityID, w.CityName, w.Temperature, w.Condition, w.IconURL, w.Description,
		w.Humidity, w.WindSpeed, w.ObservedAt.Unix(), r.now().UTC().Unix())
	if err != nil {
		return err
	}
	r.changes.notify(w.CityID)
	return nil
}

func (r *WeatherRepo) Get(ctx context.Context, cityID int) (domain.Weather, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT city_id, city_name, temperature, condition, icon_url, description,
	 humidity, wind_speed, observed_at
	FROM weather WHERE city_id = ?`, cityID)
	w, err := scanWeather(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Weather{}, ErrNotFound
	}
	return w, err
}

// ListCityNames returns every cached city name, alphabetically.
func (r *WeatherRepo) ListCityNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT city_name FROM weather ORDER BY city_name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes rows last written before cutoff.
func (r *WeatherRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weather WHERE updated_at < ?`, cutoff.UTC().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Observe emits the cached row for cityID, then the row again each time it
// changes. Nothing is sent while the city is not cached. The channel is
// closed when ctx ends.
func (r *WeatherRepo) Observe(ctx context.Context, cityID int) <-chan domain.Weather {
	out := make(chan domain.Weather)
	wake := r.changes.subscribe(cityID)

	go func() {
		defer close(out)
		defer r.changes.unsubscribe(cityID, wake)

		var last *domain.Weather
		for {
			w, err := r.Get(ctx, cityID)
			if err == nil && (last == nil || !last.Equal(w)) {
				select {
				case out <- w:
					last = &w
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
