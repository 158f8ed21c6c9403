package session_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
)

// stubAuth fakes the auth domain service.
type stubAuth struct {
	loginResult *session.AuthResult
	loginErr    error
	meResult    *session.User
	meErr       error
	logoutCalls int
}

func (s *stubAuth) Login(context.Context, session.Credentials) (*session.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuth) Register(context.Context, session.RegisterInput) (*session.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuth) AdminLogin(context.Context, session.Credentials) (*session.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuth) Me(context.Context) (*session.User, error) { return s.meResult, s.meErr }

func (s *stubAuth) Refresh(context.Context) (*session.AuthResult, error) {
	return nil, errors.New("refresh unavailable")
}

func (s *stubAuth) Logout(context.Context) error {
	s.logoutCalls++
	return nil
}

func (s *stubAuth) UpdateProfile(context.Context, session.ProfileInput) (*session.User, error) {
	return s.meResult, s.meErr
}

func newManager(t *testing.T, auth session.AuthAPI) (*session.Manager, *session.TokenStore) {
	t.Helper()
	tokens := session.NewTokenStore(storage.New(storage.NewMemoryBackend(), nil))
	client := api.New(api.Config{BaseURL: "http://unused", TokenTTL: time.Hour},
		api.WithTokenSource(tokens))
	return session.NewManager(tokens, client, auth, nil), tokens
}

func TestInitializeWithoutToken(t *testing.T) {
	manager, _ := newManager(t, &stubAuth{})
	manager.Initialize(context.Background())
	require.Equal(t, session.StateAnonymous, manager.State())
}

func TestInitializeWithStructurallyInvalidToken(t *testing.T) {
	ctx := context.Background()
	manager, tokens := newManager(t, &stubAuth{})
	tokens.Store(ctx, "garbage", time.Now().Add(time.Hour))

	manager.Initialize(ctx)
	require.Equal(t, session.StateAnonymous, manager.State())
	_, found := tokens.Load(ctx)
	require.False(t, found, "bad token purged during initialization")
}

func TestInitializeRefreshesUserFromBackend(t *testing.T) {
	ctx := context.Background()
	fresh := &session.User{ID: "u1", Name: "Fresh Name", Role: session.RoleAdmin}
	manager, tokens := newManager(t, &stubAuth{meResult: fresh})

	tokens.Store(ctx, "an-opaque-token-that-is-long-enough-0123", time.Now().Add(time.Hour))
	tokens.SaveUser(ctx, session.User{ID: "u1", Name: "Stale Name", Role: session.RoleAdmin})

	manager.Initialize(ctx)
	require.Equal(t, session.StateAuthenticated, manager.State())

	user, ok := manager.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "Fresh Name", user.Name, "cached copy overwritten by the fetched one")

	persisted, found := tokens.LoadUser(ctx)
	require.True(t, found)
	require.Equal(t, "Fresh Name", persisted.Name)
}

func TestInitializeKeepsCachedUserOnTransientFailure(t *testing.T) {
	ctx := context.Background()
	manager, tokens := newManager(t, &stubAuth{
		meErr: &api.Error{Code: api.CodeServer, Message: "server error", Status: http.StatusInternalServerError},
	})

	tokens.Store(ctx, "an-opaque-token-that-is-long-enough-0123", time.Now().Add(time.Hour))
	tokens.SaveUser(ctx, session.User{ID: "u1", Name: "Cached", Role: session.RoleStudent})

	manager.Initialize(ctx)
	require.Equal(t, session.StateAuthenticated, manager.State())
	user, _ := manager.CurrentUser()
	require.Equal(t, "Cached", user.Name)
}

func TestInitializeDeauthenticatesOn401(t *testing.T) {
	ctx := context.Background()
	manager, tokens := newManager(t, &stubAuth{
		meErr: &api.Error{Code: api.CodeUnauthorized, Message: "expired", Status: http.StatusUnauthorized},
	})

	tokens.Store(ctx, "an-opaque-token-that-is-long-enough-0123", time.Now().Add(time.Hour))
	tokens.SaveUser(ctx, session.User{ID: "u1", Role: session.RoleStudent})

	manager.Initialize(ctx)
	require.Equal(t, session.StateAnonymous, manager.State())
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	auth := &stubAuth{loginResult: &session.AuthResult{
		Token:     "fresh-token-long-enough-for-the-heuristic",
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
		User:      session.User{ID: "u1", Email: "a@b.com", Role: session.RoleStudent},
	}}
	manager, tokens := newManager(t, auth)

	user, err := manager.Login(ctx, session.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, session.StateAuthenticated, manager.State())

	sess, found := tokens.Load(ctx)
	require.True(t, found)
	require.Greater(t, sess.ExpiresAt, time.Now().UnixMilli(), "persisted expiry is in the future")
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	auth := &stubAuth{loginErr: &api.Error{Code: api.CodeUnauthorized, Message: "invalid credentials", Status: http.StatusUnauthorized}}
	manager, tokens := newManager(t, auth)

	_, err := manager.Login(ctx, session.Credentials{Email: "a@b.com", Password: "bad"})
	require.Error(t, err)
	require.Equal(t, session.StateAnonymous, manager.State())

	_, found := tokens.Load(ctx)
	require.False(t, found, "nothing persisted on failed login")
}

func TestLogoutPurgesEverything(t *testing.T) {
	ctx := context.Background()
	auth := &stubAuth{loginResult: &session.AuthResult{
		Token: "fresh-token-long-enough-for-the-heuristic",
		User:  session.User{ID: "u1", Role: session.RoleAdmin},
	}}
	manager, tokens := newManager(t, auth)

	_, err := manager.Login(ctx, session.Credentials{})
	require.NoError(t, err)
	require.True(t, manager.IsAdmin())

	manager.Logout(ctx)
	require.Equal(t, session.StateAnonymous, manager.State())
	require.False(t, manager.IsAdmin())
	require.Equal(t, 1, auth.logoutCalls)

	_, found := tokens.Load(ctx)
	require.False(t, found)
}
