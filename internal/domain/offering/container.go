package offering

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the service lines for the admin screen. Loads are
// gated on authentication.
type Container struct {
	*state.Collection[Offering]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Offering](gate),
			state.WithLogger[Offering](logger)),
		svc: svc,
	}
}

func (c *Container) Save(ctx context.Context, off Offering) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if off.ID != "" && c.known(off.ID) {
			_, err := c.svc.Update(ctx, off)
			return err
		}
		_, err := c.svc.Create(ctx, off)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, off := range c.Items() {
		if off.ID == id {
			return true
		}
	}
	return false
}
