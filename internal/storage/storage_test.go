package storage_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/storage"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend(), nil)

	type record struct {
		ID    string   `json:"id"`
		Tags  []string `json:"tags"`
		Count int      `json:"count"`
	}

	store.Set(ctx, "key", record{ID: "a1", Tags: []string{"x", "y"}, Count: 3})

	var out record
	require.True(t, store.Get(ctx, "key", &out))
	require.Equal(t, "a1", out.ID)
	require.Equal(t, []string{"x", "y"}, out.Tags)

	store.Remove(ctx, "key")
	require.False(t, store.Get(ctx, "key", &out))
}

func TestStoreGetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend(), nil)

	value := "default"
	require.False(t, store.Get(ctx, "absent", &value))
	require.Equal(t, "default", value, "out must stay untouched on a miss")
}

func TestStoreGetMalformedJSON(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, "broken", "{not json"))

	store := storage.New(backend, nil)
	var out map[string]any
	require.False(t, store.Get(ctx, "broken", &out), "parse failure degrades to a miss")
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	store := storage.New(backend, nil)
	store.Set(ctx, "auth.token", map[string]any{"accessToken": "abc"})

	var out map[string]any
	require.True(t, store.Get(ctx, "auth.token", &out))
	require.Equal(t, "abc", out["accessToken"])

	_, err = backend.Get(ctx, "never-written")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	backend, err := storage.NewSQLiteBackend(t.TempDir() + "/state.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	require.NoError(t, backend.Set(ctx, "k", `{"v":1}`))
	require.NoError(t, backend.Set(ctx, "k", `{"v":2}`), "upsert overwrites")

	value, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, value)

	require.NoError(t, backend.Remove(ctx, "k"))
	_, err = backend.Get(ctx, "k")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteBackendFailSoft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT value FROM kv").WillReturnError(sqlmock.ErrCancelled)

	store := storage.New(storage.NewSQLiteBackendFromDB(db), nil)
	var out string
	require.False(t, store.Get(context.Background(), "k", &out),
		"backend failure must degrade to a miss, not an error")
	require.NoError(t, mock.ExpectationsWereMet())
}
