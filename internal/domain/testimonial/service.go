// Package testimonial manages published testimonials.
package testimonial

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the testimonials routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Testimonial, error) {
	return api.List[Testimonial](ctx, s.client, api.CollectionPath(api.ResourceTestimonials))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Testimonial, error) {
	return api.Object[Testimonial](ctx, s.client, api.DetailPath(api.ResourceTestimonials, id))
}

func (s *Service) Create(ctx context.Context, tst Testimonial) (*Testimonial, error) {
	if tst.ID == "" {
		tst.ID = ids.New()
	}
	var out Testimonial
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceTestimonials), tst, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, tst Testimonial) (*Testimonial, error) {
	var out Testimonial
	if err := s.client.Put(ctx, api.DetailPath(api.ResourceTestimonials, tst.ID), tst, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceTestimonials, id), nil)
}
