package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestThemeService(t *testing.T) (ThemeService, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewThemeService(client, testLogger()), server
}

func TestThemeDefaultsToLight(t *testing.T) {
	svc, _ := newTestThemeService(t)

	theme, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, theme.Theme)
}

func TestThemeTogglePersists(t *testing.T) {
	svc, _ := newTestThemeService(t)

	toggled, err := svc.Toggle(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeDark, toggled.Theme)

	theme, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeDark, theme.Theme)

	toggled, err = svc.Toggle(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, toggled.Theme)
}

func TestThemeIsPerClient(t *testing.T) {
	svc, _ := newTestThemeService(t)

	_, err := svc.Toggle(context.Background(), "client-1")
	require.NoError(t, err)

	other, err := svc.Get(context.Background(), "client-2")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, other.Theme)
}

func TestThemeSurvivesServiceRestart(t *testing.T) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	svc := NewThemeService(client, testLogger())

	_, err := svc.Toggle(context.Background(), "client-1")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	// A fresh client against the same store sees the saved preference.
	client = redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc = NewThemeService(client, testLogger())

	theme, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeDark, theme.Theme)
}

func TestThemeUnparsableValueFallsBackToLight(t *testing.T) {
	svc, server := newTestThemeService(t)

	require.NoError(t, server.Set("gpt-academy:theme:client-1", "sepia"))

	theme, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, theme.Theme)
}
