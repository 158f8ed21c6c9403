package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Persisted keys. Values are JSON-encoded.
const (
	KeyAuthToken   = "auth.token"
	KeyAuthUser    = "auth.user"
	KeyCurrentUser = "auth.currentUser" // legacy mirror kept for older console builds

	KeyPosts        = "collections.posts"
	KeyInternships  = "collections.internships"
	KeyTraining     = "collections.training"
	KeyEmployees    = "collections.employees"
	KeyApplications = "collections.applications"
	KeyMessages     = "collections.messages"
	KeyTestimonials = "collections.testimonials"
	KeyServices     = "collections.services"
	KeyJobs         = "collections.jobs"
	KeyProjects     = "collections.projects"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a raw string key/value medium.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Store wraps a Backend with JSON (de)serialization and fail-soft reads.
// A missing key, a backend failure, or malformed JSON all degrade to a
// miss; callers fall back to their defaults and never see an error.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a Store over the given backend.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, logger: logger}
}

// Get decodes the value stored at key into out and reports whether a
// usable value was found. out is left untouched on a miss.
func (s *Store) Get(ctx context.Context, key string, out any) bool {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Debug("storage read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Debug("storage value malformed", "key", key, "error", err)
		return false
	}
	return true
}

// Set serializes value and writes it at key. Failures are logged and swallowed.
func (s *Store) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("storage marshal failed", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, string(raw)); err != nil {
		s.logger.Debug("storage write failed", "key", key, "error", err)
	}
}

// Remove deletes the value at key. Failures are logged and swallowed.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Remove(ctx, key); err != nil {
		s.logger.Debug("storage remove failed", "key", key, "error", err)
	}
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
