package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(" OpenWeather ", "abc123"))
	got, err := s.Fetch("openweather")
	require.NoError(t, err)
	require.Equal(t, "abc123", got)

	raw, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "abc123")

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreFetchMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Fetch("openweather")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put("openweather", "abc123"))

	require.NoError(t, s.Delete("openweather"))
	require.NoError(t, s.Delete("openweather"))
	_, err = s.Fetch("openweather")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejectsBlankName(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.Error(t, s.Put("  ", "x"))
	_, err = s.Fetch("")
	require.Error(t, err)
}
