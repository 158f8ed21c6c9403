package testimonial

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches testimonials for the admin screen. Loads are gated on
// authentication.
type Container struct {
	*state.Collection[Testimonial]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Testimonial](gate),
			state.WithLogger[Testimonial](logger)),
		svc: svc,
	}
}

func (c *Container) Save(ctx context.Context, tst Testimonial) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if tst.ID != "" && c.known(tst.ID) {
			_, err := c.svc.Update(ctx, tst)
			return err
		}
		_, err := c.svc.Create(ctx, tst)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, tst := range c.Items() {
		if tst.ID == id {
			return true
		}
	}
	return false
}
