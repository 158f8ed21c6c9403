// Package internship manages the internship tracks offered to students.
package internship

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the internships routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Track, error) {
	return api.List[Track](ctx, s.client, api.CollectionPath(api.ResourceInternships))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Track, error) {
	return api.Object[Track](ctx, s.client, api.DetailPath(api.ResourceInternships, id))
}

func (s *Service) Create(ctx context.Context, track Track) (*Track, error) {
	if track.ID == "" {
		track.ID = ids.New()
	}
	var out Track
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceInternships), track, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, track Track) (*Track, error) {
	var out Track
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceInternships, track.ID), track, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceInternships, id), nil)
}
