// Package project manages the company's project portfolio.
package project

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the projects routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Project, error) {
	return api.List[Project](ctx, s.client, api.CollectionPath(api.ResourceProjects))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	return api.Object[Project](ctx, s.client, api.DetailPath(api.ResourceProjects, id))
}

func (s *Service) Create(ctx context.Context, proj Project) (*Project, error) {
	if proj.ID == "" {
		proj.ID = ids.New()
	}
	var out Project
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceProjects), proj, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, proj Project) (*Project, error) {
	var out Project
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceProjects, proj.ID), proj, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceProjects, id), nil)
}
