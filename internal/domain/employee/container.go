package employee

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the staff directory. Loads are gated on authentication.
type Container struct {
	*state.Collection[Employee]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Employee](gate),
			state.WithLogger[Employee](logger)),
		svc: svc,
	}
}

func (c *Container) Save(ctx context.Context, emp Employee) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if emp.ID != "" && c.known(emp.ID) {
			_, err := c.svc.Update(ctx, emp)
			return err
		}
		_, err := c.svc.Create(ctx, emp)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, emp := range c.Items() {
		if emp.ID == id {
			return true
		}
	}
	return false
}
