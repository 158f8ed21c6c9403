// Package training manages the training programs catalogue.
package training

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the training routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Program, error) {
	return api.List[Program](ctx, s.client, api.CollectionPath(api.ResourceTraining))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Program, error) {
	return api.Object[Program](ctx, s.client, api.DetailPath(api.ResourceTraining, id))
}

func (s *Service) Create(ctx context.Context, program Program) (*Program, error) {
	if program.ID == "" {
		program.ID = ids.New()
	}
	var out Program
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceTraining), program, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, program Program) (*Program, error) {
	var out Program
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceTraining, program.ID), program, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceTraining, id), nil)
}
