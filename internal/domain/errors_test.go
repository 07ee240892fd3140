package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("fetch paris: %w", New(CodeCityNotFound, "city not found"))

	require.ErrorIs(t, err, ErrCityNotFound)
	require.NotErrorIs(t, err, ErrNetwork)
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(CodeNetwork, "network unreachable", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "network unreachable: dial tcp: connection refused", err.Error())
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	require.Equal(t, "timeout", (&Error{Code: CodeTimeout}).Error())
	require.Equal(t, "Server error occurred", ServerError(503).Error())
	require.Equal(t, 503, ServerError(503).Status)
}

func TestAsError(t *testing.T) {
	require.Nil(t, AsError(nil))

	known := New(CodeAPIKey, "bad key")
	require.Same(t, known, AsError(fmt.Errorf("wrapped: %w", known)))

	other := errors.New("boom")
	got := AsError(other)
	require.Equal(t, CodeUnknown, got.Code)
	require.ErrorIs(t, got, other)
}

func TestWeatherEqual(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Weather{CityID: 1, CityName: "Paris", Temperature: 12.5, ObservedAt: at}
	b := a
	b.ObservedAt = at.In(time.FixedZone("CET", 3600))

	require.True(t, a.Equal(b))
	b.Temperature = 13
	require.False(t, a.Equal(b))
}
