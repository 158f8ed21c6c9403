// Package auth wraps the authentication routes of the backend API.
package auth

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/session"
)

// Service is a stateless wrapper over the auth routes. It satisfies
// session.AuthAPI.
type Service struct {
	client *api.Client
}

// NewService creates an auth service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Login exchanges student credentials for a session.
func (s *Service) Login(ctx context.Context, creds session.Credentials) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := s.client.Post(ctx, api.PathLogin, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a student account and returns its first session.
func (s *Service) Register(ctx context.Context, input session.RegisterInput) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := s.client.Post(ctx, api.PathRegister, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogin exchanges credentials through the admin route.
func (s *Service) AdminLogin(ctx context.Context, creds session.Credentials) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := s.client.Post(ctx, api.PathAdminLogin, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminRegister provisions an admin account.
func (s *Service) AdminRegister(ctx context.Context, input session.RegisterInput) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := s.client.Post(ctx, api.PathAdminRegister, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the current user for the attached token.
func (s *Service) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := s.client.Get(ctx, api.PathMe, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh extends the current session's expiry.
func (s *Service) Refresh(ctx context.Context) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := s.client.Post(ctx, api.PathRefresh, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session server-side.
func (s *Service) Logout(ctx context.Context) error {
	return s.client.Post(ctx, api.PathLogout, nil, nil)
}

// UpdateProfile saves profile changes and returns the fresh user.
func (s *Service) UpdateProfile(ctx context.Context, input session.ProfileInput) (*session.User, error) {
	var out session.User
	if err := s.client.Put(ctx, api.PathProfile, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
