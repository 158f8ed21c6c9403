package training

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the public training catalogue.
type Container struct {
	*state.Collection[Program]
	svc *Service
}

func NewContainer(svc *Service, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll, state.WithLogger[Program](logger)),
		svc:        svc,
	}
}

func (c *Container) Save(ctx context.Context, program Program) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if program.ID != "" && c.known(program.ID) {
			_, err := c.svc.Update(ctx, program)
			return err
		}
		_, err := c.svc.Create(ctx, program)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, program := range c.Items() {
		if program.ID == id {
			return true
		}
	}
	return false
}
