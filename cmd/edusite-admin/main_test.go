package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/app"
	"github.com/imtda/edusite/internal/config"
	"github.com/imtda/edusite/internal/storage"
	"github.com/imtda/edusite/internal/testserver"
)

func TestWatchStopsOnContextCancel(t *testing.T) {
	backend := testserver.New(t)
	backend.Seed("posts", map[string]any{"id": "p1", "title": "Hello"})

	logger := slog.New(slog.DiscardHandler)
	cfg := config.Config{
		API:    config.APIConfig{BaseURL: backend.URL(), TokenTTL: time.Hour},
		Routes: config.RoutesConfig{Login: "/login", Home: "/"},
	}
	store := storage.New(storage.NewMemoryBackend(), nil)
	shell := app.New(cfg, store, &consoleNavigator{route: "/", logger: logger}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, shell, "posts", time.Hour, logger)
	}()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on context cancellation")
	}
}
