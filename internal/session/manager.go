package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/imtda/edusite/internal/api"
)

// State is the lifecycle phase of the session.
type State string

const (
	StateUninitialized  State = "uninitialized"
	StateInitializing   State = "initializing"
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Credentials are login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput are account creation inputs.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// ProfileInput are profile update inputs.
type ProfileInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AuthResult is the backend's answer to a credential exchange.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
	User      User   `json:"user"`
}

// AuthAPI is the slice of the auth domain service the manager consumes.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	AdminLogin(ctx context.Context, creds Credentials) (*AuthResult, error)
	Me(ctx context.Context) (*User, error)
	Refresh(ctx context.Context) (*AuthResult, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, input ProfileInput) (*User, error)
}

// Manager drives the session lifecycle. All reads and writes of the token
// store go through it or through the request client's token source.
type Manager struct {
	tokens *TokenStore
	client *api.Client
	auth   AuthAPI
	logger *slog.Logger

	mu    sync.Mutex
	state State
	user  *User
}

// NewManager creates an uninitialized manager.
func NewManager(tokens *TokenStore, client *api.Client, auth AuthAPI, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		tokens: tokens,
		client: client,
		auth:   auth,
		logger: logger,
		state:  StateUninitialized,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Authenticated reports whether a user is signed in.
func (m *Manager) Authenticated() bool {
	return m.State() == StateAuthenticated
}

// CurrentUser returns the cached profile, if signed in.
func (m *Manager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

// IsAdmin gates admin-only surfaces. Role is the sole authority.
func (m *Manager) IsAdmin() bool {
	user, ok := m.CurrentUser()
	return ok && user.IsAdmin()
}

// Initialize restores the persisted session on bootstrap. A structurally
// invalid or expired token is purged. With a usable token the profile is
// re-fetched from the backend; a 401 deauthenticates, any other failure is
// treated as transient and the cached profile is kept.
func (m *Manager) Initialize(ctx context.Context) {
	m.setState(StateInitializing, nil)

	sess, ok := m.tokens.Load(ctx)
	if !ok || !sess.Valid(time.Now()) || !StructurallyValid(sess.AccessToken) {
		m.tokens.Clear(ctx)
		m.setState(StateAnonymous, nil)
		return
	}

	cached, hasCached := m.tokens.LoadUser(ctx)

	user, err := m.auth.Me(ctx)
	switch {
	case err == nil:
		m.tokens.SaveUser(ctx, *user)
		m.refreshToken(ctx)
		m.setState(StateAuthenticated, user)
	case api.IsUnauthorized(err):
		// Teardown already ran inside the request client.
		m.setState(StateAnonymous, nil)
	case hasCached:
		m.logger.Warn("profile refresh failed, keeping cached user", "error", err)
		m.setState(StateAuthenticated, &cached)
	default:
		m.setState(StateAnonymous, nil)
	}
}

// refreshToken extends the session expiry on bootstrap, best effort.
func (m *Manager) refreshToken(ctx context.Context) {
	result, err := m.auth.Refresh(ctx)
	if err != nil || result == nil || result.Token == "" {
		return
	}
	m.client.SetToken(ctx, result.Token, expiry(result.ExpiresAt))
}

// Login exchanges credentials for a session.
func (m *Manager) Login(ctx context.Context, creds Credentials) (User, error) {
	return m.authenticate(ctx, func() (*AuthResult, error) {
		return m.auth.Login(ctx, creds)
	})
}

// Register creates an account and signs it in.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (User, error) {
	return m.authenticate(ctx, func() (*AuthResult, error) {
		return m.auth.Register(ctx, input)
	})
}

// AdminLogin signs in through the admin route. The resulting session is
// admin-capable only if the returned user carries the admin role.
func (m *Manager) AdminLogin(ctx context.Context, creds Credentials) (User, error) {
	return m.authenticate(ctx, func() (*AuthResult, error) {
		return m.auth.AdminLogin(ctx, creds)
	})
}

func (m *Manager) authenticate(ctx context.Context, exchange func() (*AuthResult, error)) (User, error) {
	m.setState(StateAuthenticating, nil)
	result, err := exchange()
	if err != nil {
		m.setState(StateAnonymous, nil)
		return User{}, err
	}
	m.client.SetToken(ctx, result.Token, expiry(result.ExpiresAt))
	m.tokens.SaveUser(ctx, result.User)
	user := result.User
	m.setState(StateAuthenticated, &user)
	return user, nil
}

// Logout notifies the backend best-effort, purges every session key, and
// returns to anonymous. The shell performs the hard reset to the home route.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Debug("backend logout failed", "error", err)
	}
	m.tokens.Clear(ctx)
	m.setState(StateAnonymous, nil)
}

// UpdateProfile saves profile changes and refreshes the cached user.
func (m *Manager) UpdateProfile(ctx context.Context, input ProfileInput) (User, error) {
	user, err := m.auth.UpdateProfile(ctx, input)
	if err != nil {
		return User{}, err
	}
	m.tokens.SaveUser(ctx, *user)
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return *user, nil
}

// Invalidated is called by the shell when the request client reports a 401
// teardown. The token store is already purged at that point.
func (m *Manager) Invalidated() {
	m.setState(StateAnonymous, nil)
}

func (m *Manager) setState(state State, user *User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()
}

func expiry(millis int64) time.Time {
	if millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
