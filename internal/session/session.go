// Package session owns the client-held proof of authentication: the
// persisted token plus the cached user profile, and the state machine
// that moves between anonymous and authenticated.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imtda/edusite/internal/storage"
)

// minTokenLength is the fallback heuristic for opaque (non-JWT) tokens.
const minTokenLength = 32

// Session is the persisted credential. ExpiresAt is epoch milliseconds.
type Session struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// Valid reports whether the session holds a token that has not expired.
// An expired session is treated as absent.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && s.ExpiresAt > now.UnixMilli()
}

// Expiry returns the expiry instant.
func (s Session) Expiry() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

// User roles. Role is the sole authority for admin gating.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is the cached profile owned by the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin derives the admin flag from the role field only.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// StructurallyValid applies the format heuristic used in lieu of
// cryptographic verification: a token is acceptable when it parses as a
// JWT (unverified) or meets the minimum length for opaque tokens.
func StructurallyValid(token string) bool {
	if token == "" {
		return false
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{}); err == nil {
		return true
	}
	return len(token) >= minTokenLength
}

// TokenStore persists the session through the storage adapter and serves
// as the request client's token source.
type TokenStore struct {
	store *storage.Store
}

// NewTokenStore wraps the given storage adapter.
func NewTokenStore(store *storage.Store) *TokenStore {
	return &TokenStore{store: store}
}

// Token returns the current access token when a valid, unexpired session
// exists. An expired session is purged on sight.
func (ts *TokenStore) Token(ctx context.Context) (string, bool) {
	var sess Session
	if !ts.store.Get(ctx, storage.KeyAuthToken, &sess) {
		return "", false
	}
	if !sess.Valid(time.Now()) {
		ts.Clear(ctx)
		return "", false
	}
	return sess.AccessToken, true
}

// Store persists a new session credential.
func (ts *TokenStore) Store(ctx context.Context, token string, expiresAt time.Time) {
	ts.store.Set(ctx, storage.KeyAuthToken, Session{
		AccessToken: token,
		ExpiresAt:   expiresAt.UnixMilli(),
	})
}

// Clear purges every session key, including the legacy mirror.
func (ts *TokenStore) Clear(ctx context.Context) {
	ts.store.Remove(ctx, storage.KeyAuthToken)
	ts.store.Remove(ctx, storage.KeyAuthUser)
	ts.store.Remove(ctx, storage.KeyCurrentUser)
}

// Load returns the persisted session, if any.
func (ts *TokenStore) Load(ctx context.Context) (Session, bool) {
	var sess Session
	if !ts.store.Get(ctx, storage.KeyAuthToken, &sess) {
		return Session{}, false
	}
	return sess, true
}

// SaveUser persists the cached profile and its legacy mirror.
func (ts *TokenStore) SaveUser(ctx context.Context, user User) {
	ts.store.Set(ctx, storage.KeyAuthUser, user)
	ts.store.Set(ctx, storage.KeyCurrentUser, user)
}

// LoadUser returns the cached profile, if any.
func (ts *TokenStore) LoadUser(ctx context.Context) (User, bool) {
	var user User
	if !ts.store.Get(ctx, storage.KeyAuthUser, &user) {
		return User{}, false
	}
	return user, true
}
