package blog

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/state"
)

// Container caches the post list. The blog is public; loads are ungated.
type Container struct {
	*state.Collection[Post]
	svc *Service
}

// NewContainer creates the blog state container.
func NewContainer(svc *Service, logger *slog.Logger) *Container {
	return &Container{
		Collection: state.NewCollection(svc.GetAll, state.WithLogger[Post](logger)),
		svc:        svc,
	}
}

// Save creates or updates the post, then reloads the full collection.
func (c *Container) Save(ctx context.Context, post Post) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if post.ID != "" && c.known(post.ID) {
			_, err := c.svc.Update(ctx, post)
			return err
		}
		_, err := c.svc.Create(ctx, post)
		return err
	})
}

// Delete removes the post, then reloads the full collection.
func (c *Container) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	})
}

func (c *Container) known(id string) bool {
	for _, post := range c.Items() {
		if post.ID == id {
			return true
		}
	}
	return false
}
