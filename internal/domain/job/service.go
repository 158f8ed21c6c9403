// Package job manages the open positions listed on the careers page.
package job

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the jobs routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Job, error) {
	return api.List[Job](ctx, s.client, api.CollectionPath(api.ResourceJobs))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Job, error) {
	return api.Object[Job](ctx, s.client, api.DetailPath(api.ResourceJobs, id))
}

func (s *Service) Create(ctx context.Context, job Job) (*Job, error) {
	if job.ID == "" {
		job.ID = ids.New()
	}
	var out Job
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceJobs), job, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, job Job) (*Job, error) {
	var out Job
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceJobs, job.ID), job, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceJobs, id), nil)
}
