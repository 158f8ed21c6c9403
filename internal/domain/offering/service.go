// Package offering manages the company's service lines (the "services"
// resource in the backend contract).
package offering

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the services routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Offering, error) {
	return api.List[Offering](ctx, s.client, api.CollectionPath(api.ResourceServices))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return api.Object[Offering](ctx, s.client, api.DetailPath(api.ResourceServices, id))
}

func (s *Service) Create(ctx context.Context, off Offering) (*Offering, error) {
	if off.ID == "" {
		off.ID = ids.New()
	}
	var out Offering
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceServices), off, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, off Offering) (*Offering, error) {
	var out Offering
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceServices, off.ID), off, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceServices, id), nil)
}
