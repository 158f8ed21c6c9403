package contact

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the admin inbox. Loads are gated on authentication;
// submitting the public form does not require the container.
type Container struct {
	*state.Collection[Message]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Message](gate),
			state.WithLogger[Message](logger)),
		svc: svc,
	}
}

// Submit sends a message. The inbox is only refreshed when an admin has
// already loaded it; anonymous submitters never trigger a gated read.
func (c *Container) Submit(ctx context.Context, msg Message) error {
	if _, err := c.svc.Submit(ctx, msg); err != nil {
		return err
	}
	if c.Loaded() {
		c.Load(ctx)
	}
	return nil
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}
