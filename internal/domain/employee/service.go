// Package employee manages the staff directory.
package employee

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the employees routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Employee, error) {
	return api.List[Employee](ctx, s.client, api.CollectionPath(api.ResourceEmployees))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	return api.Object[Employee](ctx, s.client, api.DetailPath(api.ResourceEmployees, id))
}

func (s *Service) Create(ctx context.Context, emp Employee) (*Employee, error) {
	if emp.ID == "" {
		emp.ID = ids.New()
	}
	var out Employee
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceEmployees), emp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, emp Employee) (*Employee, error) {
	var out Employee
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceEmployees, emp.ID), emp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceEmployees, id), nil)
}
