// Package contact handles the public contact form and the admin inbox.
package contact

import (
	"context"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the messages routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Submit sends a contact-form message. This is the one public write.
func (s *Service) Submit(ctx context.Context, msg Message) (*Message, error) {
	if msg.ID == "" {
		msg.ID = ids.New()
	}
	var out Message
	if err := s.client.Post(ctx, api.CollectionPath(api.ResourceMessages), msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAll lists the admin inbox.
func (s *Service) GetAll(ctx context.Context) ([]Message, error) {
	return api.List[Message](ctx, s.client, api.CollectionPath(api.ResourceMessages))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Message, error) {
	return api.Object[Message](ctx, s.client, api.DetailPath(api.ResourceMessages, id))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceMessages, id), nil)
}
