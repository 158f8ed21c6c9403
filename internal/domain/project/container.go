package project

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the public project listing.
type Container struct {
	*state.Collection[Project]
	svc *Service
}

func NewContainer(svc *Service, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll, state.WithLogger[Project](logger)),
		svc:        svc,
	}
}

func (c *Container) Save(ctx context.Context, proj Project) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if proj.ID != "" && c.known(proj.ID) {
			_, err := c.svc.Update(ctx, proj)
			return err
		}
		_, err := c.svc.Create(ctx, proj)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, proj := range c.Items() {
		if proj.ID == id {
			return true
		}
	}
	return false
}
