package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
)

func TestSessionValidity(t *testing.T) {
	now := time.Now()

	live := session.Session{AccessToken: "t", ExpiresAt: now.Add(time.Hour).UnixMilli()}
	require.True(t, live.Valid(now))

	expired := session.Session{AccessToken: "t", ExpiresAt: now.Add(-time.Second).UnixMilli()}
	require.False(t, expired.Valid(now))

	empty := session.Session{ExpiresAt: now.Add(time.Hour).UnixMilli()}
	require.False(t, empty.Valid(now))
}

func TestStructurallyValid(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	require.True(t, session.StructurallyValid(signed))

	require.True(t, session.StructurallyValid("an-opaque-token-that-is-long-enough-0123"))
	require.False(t, session.StructurallyValid("short"))
	require.False(t, session.StructurallyValid(""))
}

func TestTokenStorePurgesExpired(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend(), nil)
	tokens := session.NewTokenStore(store)

	tokens.Store(ctx, "stale-token", time.Now().Add(-time.Minute))
	_, ok := tokens.Token(ctx)
	require.False(t, ok)

	_, found := tokens.Load(ctx)
	require.False(t, found, "expired session treated as absent and purged")
}

func TestTokenStoreClearRemovesLegacyMirror(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend(), nil)
	tokens := session.NewTokenStore(store)

	tokens.Store(ctx, "token", time.Now().Add(time.Hour))
	tokens.SaveUser(ctx, session.User{ID: "u1", Role: session.RoleStudent})
	tokens.Clear(ctx)

	var out any
	require.False(t, store.Get(ctx, storage.KeyAuthToken, &out))
	require.False(t, store.Get(ctx, storage.KeyAuthUser, &out))
	require.False(t, store.Get(ctx, storage.KeyCurrentUser, &out))
}

func TestIsAdminDerivedFromRoleOnly(t *testing.T) {
	require.True(t, session.User{Role: session.RoleAdmin}.IsAdmin())
	// An admin-looking email must not grant access; the role is the
	// sole authority.
	require.False(t, session.User{Email: "admin@imtda.com", Role: session.RoleStudent}.IsAdmin())
}
