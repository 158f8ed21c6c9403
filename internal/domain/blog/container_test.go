package blog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/domain/blog"
	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
	"github.com/imtda/edusite/internal/testserver"
)

func newContainer(t *testing.T) (*blog.Container, *testserver.TestServer) {
	t.Helper()
	backend := testserver.New(t)
	tokens := session.NewTokenStore(storage.New(storage.NewMemoryBackend(), nil))
	backend.SeedUser("Admin", "admin@imtda.com", "secret", "admin")
	tokens.Store(context.Background(), backend.IssueToken("admin@imtda.com"), time.Now().Add(time.Hour))

	client := api.New(api.Config{BaseURL: backend.URL()}, api.WithTokenSource(tokens))
	return blog.NewContainer(blog.NewService(client), nil), backend
}

func TestPostsReadableWithoutToken(t *testing.T) {
	ctx := context.Background()
	backend := testserver.New(t)
	backend.Seed("posts", map[string]any{"id": "p1", "title": "Hello"})

	client := api.New(api.Config{BaseURL: backend.URL()})
	container := blog.NewContainer(blog.NewService(client), nil)

	require.True(t, container.EnsureLoaded(ctx))
	items := container.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Hello", items[0].Title)
}

func TestSaveCreatesAndReloads(t *testing.T) {
	ctx := context.Background()
	container, backend := newContainer(t)

	err := container.Save(ctx, blog.Post{Title: "Launch notes", Author: "Team"})
	require.NoError(t, err)

	items := container.Items()
	require.Len(t, items, 1)
	require.NotEmpty(t, items[0].ID, "client assigns an id before the create")
	require.Equal(t, 1, backend.Count("posts"))
}

func TestDoubleSaveUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	container, backend := newContainer(t)

	require.NoError(t, container.Save(ctx, blog.Post{Title: "first title"}))
	saved := container.Items()[0]

	saved.Title = "second title"
	require.NoError(t, container.Save(ctx, saved))

	items := container.Items()
	require.Len(t, items, 1, "resubmitting a known id must not duplicate the record")
	require.Equal(t, "second title", items[0].Title)
	require.Equal(t, 1, backend.Count("posts"))
}

func TestDeleteThenReloadDropsRecord(t *testing.T) {
	ctx := context.Background()
	container, backend := newContainer(t)
	backend.Seed("posts", map[string]any{"id": "p1", "title": "Doomed"})
	backend.Seed("posts", map[string]any{"id": "p2", "title": "Kept"})

	container.Load(ctx)
	require.NoError(t, container.Delete(ctx, "p1"))

	items := container.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Kept", items[0].Title)
}

func TestUnreachableBackendRecordsError(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening any more

	client := api.New(api.Config{BaseURL: server.URL})
	container := blog.NewContainer(blog.NewService(client), nil)

	container.Load(ctx)
	require.Error(t, container.Err())
	require.True(t, api.IsNetwork(container.Err()))
	require.Empty(t, container.Items())
}

func TestMalformedListDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	container, backend := newContainer(t)
	backend.SetMalformed("posts", true)

	container.Load(ctx)
	require.NoError(t, container.Err(), "a malformed payload is coerced, not surfaced")
	require.NotNil(t, container.Items())
	require.Empty(t, container.Items())
}
