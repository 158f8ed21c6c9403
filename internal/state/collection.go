// Package state holds the in-memory collection cells that keep each
// entity's list view eventually consistent with the backend. Every
// mutation is followed by a full reload; the server is ground truth and
// records are never merged locally.
package state

import (
	"context"
	"log/slog"
	"sync"
)

// Fetcher loads the full collection from the backend.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Gate decides whether the initial load may run. Access-controlled
// collections gate on the session being authenticated.
type Gate func() bool

// Option customizes a Collection.
type Option[T any] func(*Collection[T])

// WithGate restricts the initial load.
func WithGate[T any](gate Gate) Option[T] {
	return func(c *Collection[T]) { c.gate = gate }
}

// WithLogger sets the collection logger. A nil logger keeps the discard
// default.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Collection[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Collection is one entity's cached list plus its loading flag and last
// error. The last fetch to finish wins; loads are not de-duplicated.
type Collection[T any] struct {
	fetch  Fetcher[T]
	gate   Gate
	logger *slog.Logger

	mu      sync.Mutex
	items   []T
	loading bool
	err     error
	loaded  bool
}

// NewCollection creates an empty cell around the given fetcher.
func NewCollection[T any](fetch Fetcher[T], opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		fetch:  fetch,
		logger: slog.New(slog.DiscardHandler),
		items:  []T{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the cached items with a fresh fetch-all. On failure the
// cache is emptied and the error recorded.
func (c *Collection[T]) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.loaded = true
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Debug("collection load failed", "error", err)
		c.items = []T{}
		c.err = err
		return
	}
	c.items = items
	c.err = nil
}

// EnsureLoaded triggers the initial load once, respecting the gate.
// It reports whether the collection has been loaded at all.
func (c *Collection[T]) EnsureLoaded(ctx context.Context) bool {
	if c.gate != nil && !c.gate() {
		return false
	}
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if !loaded {
		c.Load(ctx)
	}
	return true
}

// Mutate runs a write against the backend and then unconditionally
// reloads the full collection. The reload outcome lands in Err.
func (c *Collection[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		return err
	}
	c.Load(ctx)
	return nil
}

// Items returns a copy of the cached list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a fetch is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Loaded reports whether an initial load has been triggered.
func (c *Collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Err returns the last recorded error, if any.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Reset drops the cache so the next EnsureLoaded fetches again. Called on
// authentication transitions.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []T{}
	c.err = nil
	c.loaded = false
	c.loading = false
}
