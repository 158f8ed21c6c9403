package internship

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the public internship listing.
type Container struct {
	*state.Collection[Track]
	svc *Service
}

func NewContainer(svc *Service, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll, state.WithLogger[Track](logger)),
		svc:        svc,
	}
}

func (c *Container) Save(ctx context.Context, track Track) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if track.ID != "" && c.known(track.ID) {
			_, err := c.svc.Update(ctx, track)
			return err
		}
		_, err := c.svc.Create(ctx, track)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, track := range c.Items() {
		if track.ID == id {
			return true
		}
	}
	return false
}
