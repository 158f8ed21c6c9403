// Package blog manages the public blog posts and their admin screen.
package blog

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the posts routes.
type Service struct {
	client *api.Client
}

// NewService creates a blog service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists every post. A malformed payload degrades to an empty list.
func (s *Service) GetAll(ctx context.Context) ([]Post, error) {
	return api.List[Post](ctx, s.client, api.CollectionPath(api.ResourcePosts))
}

// GetByID fetches one post.
func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	return api.Object[Post](ctx, s.client, api.DetailPath(api.ResourcePosts, id))
}

// Create stores a new post, assigning a client-side id when absent.
func (s *Service) Create(ctx context.Context, post Post) (*Post, error) {
	if post.ID == "" {
		post.ID = ids.New()
	}
	var out Post
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourcePosts), post, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites an existing post. Last write wins.
func (s *Service) Update(ctx context.Context, post Post) (*Post, error) {
	var out Post
	if err := s.client.Put(ctx, api.DetailPath(api.ResourcePosts, post.ID), post, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourcePosts, id), nil)
}
