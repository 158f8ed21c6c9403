package integration_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/app"
	"github.com/imtda/edusite/internal/config"
	"github.com/imtda/edusite/internal/domain/application"
	"github.com/imtda/edusite/internal/domain/blog"
	"github.com/imtda/edusite/internal/domain/contact"
	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
	"github.com/imtda/edusite/internal/testserver"
)

// fakeNavigator records route changes made by the shell.
type fakeNavigator struct {
	mu     sync.Mutex
	route  string
	visits []string
}

func (n *fakeNavigator) NavigateTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.route = route
	n.visits = append(n.visits, route)
}

func (n *fakeNavigator) CurrentRoute() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

type testEnv struct {
	app     *app.App
	backend *testserver.TestServer
	store   *storage.Store
	nav     *fakeNavigator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := testserver.New(t)
	store := storage.New(storage.NewMemoryBackend(), nil)
	nav := &fakeNavigator{route: "/"}

	cfg := config.Config{
		API:    config.APIConfig{BaseURL: backend.URL(), Timeout: 5 * time.Second, TokenTTL: time.Hour},
		Routes: config.RoutesConfig{Login: "/login", Home: "/"},
	}
	a := app.New(cfg, store, nav, nil)
	a.Bootstrap(context.Background())
	return &testEnv{app: a, backend: backend, store: store, nav: nav}
}

func TestLoginLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "a@b.com", "secret", "student")

	require.Equal(t, session.StateAnonymous, env.app.Session.State())

	user, err := env.app.Session.Login(ctx, session.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "Asha", user.Name)
	require.Equal(t, session.StateAuthenticated, env.app.Session.State())

	// The stored token now authenticates protected reads.
	require.True(t, env.app.Messages.EnsureLoaded(ctx))
	require.NoError(t, env.app.Messages.Err())
}

func TestBootstrapRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "a@b.com", "secret", "student")

	_, err := env.app.Session.Login(ctx, session.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	// A second shell over the same storage adapter resumes the session.
	nav := &fakeNavigator{route: "/"}
	cfg := config.Config{
		API:    config.APIConfig{BaseURL: env.backend.URL(), TokenTTL: time.Hour},
		Routes: config.RoutesConfig{Login: "/login", Home: "/"},
	}
	second := app.New(cfg, env.store, nav, nil)
	second.Bootstrap(ctx)

	require.Equal(t, session.StateAuthenticated, second.Session.State())
	user, ok := second.Session.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "a@b.com", user.Email)
}

func TestApplyThenAdminApprove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "student@b.com", "secret", "student")
	env.backend.SeedUser("Root", "admin@b.com", "secret", "admin")
	env.backend.Seed("internships", map[string]any{"id": "t1", "title": "Backend Track"})

	student, err := env.app.Session.Login(ctx, session.Credentials{Email: "student@b.com", Password: "secret"})
	require.NoError(t, err)

	resume := strings.NewReader("resume body")
	err = env.app.Applications.SubmitForInternship(ctx, application.Application{
		StudentID:    student.ID,
		InternshipID: "t1",
	}, resume)
	require.NoError(t, err)

	submitted := env.app.Applications.Items()
	require.Len(t, submitted, 1)
	require.Equal(t, application.StatusPending, submitted[0].Status)

	// Hand the review over to an admin shell against the same backend,
	// with its own storage adapter.
	adminStore := storage.New(storage.NewMemoryBackend(), nil)
	adminNav := &fakeNavigator{route: "/"}
	cfg := config.Config{
		API:    config.APIConfig{BaseURL: env.backend.URL(), TokenTTL: time.Hour},
		Routes: config.RoutesConfig{Login: "/login", Home: "/"},
	}
	admin := app.New(cfg, adminStore, adminNav, nil)
	admin.Bootstrap(ctx)
	_, err = admin.Session.AdminLogin(ctx, session.Credentials{Email: "admin@b.com", Password: "secret"})
	require.NoError(t, err)

	require.True(t, admin.Applications.EnsureLoaded(ctx))
	require.NoError(t, admin.Applications.UpdateStatus(ctx, submitted[0].ID, application.StatusApproved))

	reviewed := admin.Applications.Items()
	require.Len(t, reviewed, 1, "approval must not duplicate the record")
	require.Equal(t, application.StatusApproved, reviewed[0].Status)
}

func TestAdminLoginRejectsStudentRole(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "a@b.com", "secret", "student")

	_, err := env.app.Session.AdminLogin(ctx, session.Credentials{Email: "a@b.com", Password: "secret"})
	require.Error(t, err)
	require.Equal(t, session.StateAnonymous, env.app.Session.State())
}

func TestRevokedTokenRedirectsToLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "a@b.com", "secret", "student")

	_, err := env.app.Session.Login(ctx, session.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.True(t, env.app.Applications.EnsureLoaded(ctx))

	sess, found := session.NewTokenStore(env.store).Load(ctx)
	require.True(t, found)
	env.backend.RevokeToken(sess.AccessToken)

	// The next protected call 401s, tears the session down and redirects.
	env.app.Applications.Load(ctx)
	require.Error(t, env.app.Applications.Err())
	require.Equal(t, session.StateAnonymous, env.app.Session.State())
	require.Equal(t, "/login", env.nav.CurrentRoute())

	_, found = session.NewTokenStore(env.store).Load(ctx)
	require.False(t, found, "teardown purges the persisted session")
}

func TestLogoutResetsToHome(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.SeedUser("Asha", "a@b.com", "secret", "student")

	_, err := env.app.Session.Login(ctx, session.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.True(t, env.app.Posts.EnsureLoaded(ctx))

	env.nav.NavigateTo("/dashboard")
	env.app.Logout(ctx)

	require.Equal(t, session.StateAnonymous, env.app.Session.State())
	require.Equal(t, "/", env.nav.CurrentRoute())
	require.False(t, env.app.Posts.Loaded(), "caches drop on logout")
}

func TestAnonymousContactSubmission(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.app.Messages.Submit(ctx, contact.Message{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Body:  "Do you run evening batches?",
	})
	require.NoError(t, err)
	require.Equal(t, 1, env.backend.Count("messages"))
	require.False(t, env.app.Messages.Loaded(), "anonymous submit must not trigger a gated inbox read")
}

func TestPublicContentVisibleWhileAnonymous(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.Seed("posts", map[string]any{"id": "p1", "title": "Welcome"})

	require.True(t, env.app.Posts.EnsureLoaded(ctx))
	posts := env.app.Posts.Items()
	require.Len(t, posts, 1)
	require.Equal(t, blog.Post{ID: "p1", Title: "Welcome"}, posts[0])

	require.False(t, env.app.Employees.EnsureLoaded(ctx), "protected collections stay closed")
}
