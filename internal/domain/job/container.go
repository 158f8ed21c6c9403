package job

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the job listing for the admin screen. Loads are gated
// on authentication.
type Container struct {
	*state.Collection[Job]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Job](gate),
			state.WithLogger[Job](logger)),
		svc: svc,
	}
}

func (c *Container) Save(ctx context.Context, job Job) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if job.ID != "" && c.known(job.ID) {
			_, err := c.svc.Update(ctx, job)
			return err
		}
		_, err := c.svc.Create(ctx, job)
		return err
	})
}

func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, job := range c.Items() {
		if job.ID == id {
			return true
		}
	}
	return false
}
