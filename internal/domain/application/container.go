package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the application list for the admin review screen.
// Loads are gated on authentication.
type Container struct {
	*state.Collection[Application]
	svc *Service
}

func NewContainer(svc *Service, gate state.Gate, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll,
			state.WithGate[Application](gate),
			state.WithLogger[Application](logger)),
		svc: svc,
	}
}

// SubmitForInternship files the application and reloads the collection.
func (c *Container) SubmitForInternship(ctx context.Context, app Application, resume io.Reader) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.svc.SubmitForInternship(ctx, app, resume)
		return err
	})
}

// SubmitForJob files the application and reloads the collection.
func (c *Container) SubmitForJob(ctx context.Context, app Application, resume io.Reader) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.svc.SubmitForJob(ctx, app, resume)
		return err
	})
}

// UpdateStatus runs the admin transition and reloads. The current status
// is taken from the cached copy, falling back to a fetch for records not
// in the cache, so disallowed transitions fail before reaching the
// backend.
func (c *Container) UpdateStatus(ctx context.Context, id string, next Status) error {
	current, err := c.currentStatus(ctx, id)
	if err != nil {
		return err
	}
	return c.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.svc.UpdateStatus(ctx, id, current, next)
		return err
	})
}

func (c *Container) currentStatus(ctx context.Context, id string) (Status, error) {
	for _, app := range c.Items() {
		if app.ID == id {
			return app.Status, nil
		}
	}
	app, err := c.svc.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return app.Status, nil
}

// Delete removes the application and reloads.
func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}
