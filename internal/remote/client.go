// Package remote fetches current weather from the OpenWeatherMap API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jask/jaskweather/internal/domain"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultUnits   = "metric"
	defaultTimeout = 10 * time.Second
)

// Client calls the current weather endpoint.
type Client struct {
	baseURL string
	apiKey  string
	units   string
	http    *http.Client
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithUnits sets the units query parameter ("metric", "imperial", "standard").
func WithUnits(units string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(units); u != "" {
			c.units = u
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		units:   defaultUnits,
		http:    &http.Client{Timeout: defaultTimeout},
		tracer:  otel.Tracer("github.com/jask/jaskweather/internal/remote"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentByName looks a city up by name.
func (c *Client) CurrentByName(ctx context.Context, city string) (domain.Weather, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(city))
	return c.current(ctx, "weather.by_name", q)
}

// CurrentByID looks a city up by its OpenWeatherMap id.
func (c *Client) CurrentByID(ctx context.Context, cityID int) (domain.Weather, error) {
	q := url.Values{}
	q.Set("id", strconv.Itoa(cityID))
	return c.current(ctx, "weather.by_id", q)
}

func (c *Client) current(ctx context.Context, spanName string, q url.Values) (domain.Weather, error) {
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	w, status, err := c.do(ctx, q)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Weather{}, err
	}
	span.SetAttributes(attribute.Int("weather.city_id", w.CityID))
	return w, nil
}

func (c *Client) do(ctx context.Context, q url.Values) (domain.Weather, int, error) {
	if c.apiKey == "" {
		return domain.Weather{}, 0, domain.New(domain.CodeAPIKey, "openweather: api key not configured")
	}
	q.Set("units", c.units)
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return domain.Weather{}, 0, domain.Wrap(domain.CodeUnknown, "openweather: build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Weather{}, 0, classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Weather{}, resp.StatusCode, classifyStatus(resp.StatusCode)
	}

	var body weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Weather{}, resp.StatusCode, domain.Wrap(domain.CodeUnknown, "openweather: decode response", err)
	}
	if body.ID == 0 {
		return domain.Weather{}, resp.StatusCode, domain.New(domain.CodeUnknown, fmt.Sprintf("openweather: response without city id (%q)", body.Name))
	}
	return body.toDomain(), resp.StatusCode, nil
}
