// Package app wires the storage adapter, request client, session manager
// and per-entity state containers into one shell. It owns navigation: the
// request layer only emits a session-invalidated event, and the shell
// translates it into a route change.
package app

import (
	"context"
	"log/slog"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/config"
	"github.com/imtda/edusite/internal/domain/application"
	"github.com/imtda/edusite/internal/domain/auth"
	"github.com/imtda/edusite/internal/domain/blog"
	"github.com/imtda/edusite/internal/domain/contact"
	"github.com/imtda/edusite/internal/domain/employee"
	"github.com/imtda/edusite/internal/domain/internship"
	"github.com/imtda/edusite/internal/domain/job"
	"github.com/imtda/edusite/internal/domain/offering"
	"github.com/imtda/edusite/internal/domain/project"
	"github.com/imtda/edusite/internal/domain/testimonial"
	"github.com/imtda/edusite/internal/domain/training"
	"github.com/imtda/edusite/internal/obs"
	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
)

// Navigator is the routing surface the shell drives.
type Navigator interface {
	NavigateTo(route string)
	CurrentRoute() string
}

// App is the composed client application.
type App struct {
	Client  *api.Client
	Session *session.Manager

	Posts        *blog.Container
	Internships  *internship.Container
	Training     *training.Container
	Projects     *project.Container
	Employees    *employee.Container
	Jobs         *job.Container
	Offerings    *offering.Container
	Testimonials *testimonial.Container
	Messages     *contact.Container
	Applications *application.Container

	nav    Navigator
	routes config.RoutesConfig
	logger *slog.Logger
}

// Option customizes the shell.
type Option func(*options)

type options struct {
	metrics *obs.Metrics
}

// WithMetrics enables outbound request instrumentation.
func WithMetrics(m *obs.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New builds the full shell over the given storage adapter and navigator.
func New(cfg config.Config, store *storage.Store, nav Navigator, logger *slog.Logger, opts ...Option) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{nav: nav, routes: cfg.Routes, logger: logger}

	tokens := session.NewTokenStore(store)
	clientOpts := []api.Option{
		api.WithTokenSource(tokens),
		api.WithLogger(logger),
		api.WithOnUnauthorized(func(ctx context.Context) { a.sessionInvalidated() }),
	}
	if o.metrics != nil {
		clientOpts = append(clientOpts, api.WithMetrics(o.metrics))
	}
	client := api.New(api.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		TokenTTL:     cfg.API.TokenTTL,
		RateLimitRPS: cfg.API.RateLimitRPS,
	}, clientOpts...)

	authSvc := auth.NewService(client)
	manager := session.NewManager(tokens, client, authSvc, logger)

	a.Client = client
	a.Session = manager
	gate := manager.Authenticated

	a.Posts = blog.NewContainer(blog.NewService(client), logger)
	a.Internships = internship.NewContainer(internship.NewService(client), logger)
	a.Training = training.NewContainer(training.NewService(client), logger)
	a.Projects = project.NewContainer(project.NewService(client), logger)
	a.Employees = employee.NewContainer(employee.NewService(client), gate, logger)
	a.Jobs = job.NewContainer(job.NewService(client), gate, logger)
	a.Offerings = offering.NewContainer(offering.NewService(client), gate, logger)
	a.Testimonials = testimonial.NewContainer(testimonial.NewService(client), gate, logger)
	a.Messages = contact.NewContainer(contact.NewService(client), gate, logger)
	a.Applications = application.NewContainer(application.NewService(client), gate, logger)

	return a
}

// Bootstrap restores the persisted session. Containers load lazily via
// EnsureLoaded at their first use.
func (a *App) Bootstrap(ctx context.Context) {
	a.Session.Initialize(ctx)
}

// Logout purges the session and performs the hard reset to the home route.
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
	a.resetAll()
	if a.nav != nil {
		a.nav.NavigateTo(a.routes.Home)
	}
}

// sessionInvalidated reacts to a 401 teardown reported by the request
// client: drop in-memory auth state and move to the login route unless
// the user is already there.
func (a *App) sessionInvalidated() {
	a.Session.Invalidated()
	a.resetProtected()
	if a.nav == nil {
		return
	}
	if a.nav.CurrentRoute() != a.routes.Login {
		a.logger.Info("session invalidated, redirecting to login")
		a.nav.NavigateTo(a.routes.Login)
	}
}

func (a *App) resetProtected() {
	a.Employees.Reset()
	a.Jobs.Reset()
	a.Offerings.Reset()
	a.Testimonials.Reset()
	a.Messages.Reset()
	a.Applications.Reset()
}

func (a *App) resetAll() {
	a.Posts.Reset()
	a.Internships.Reset()
	a.Training.Reset()
	a.Projects.Reset()
	a.resetProtected()
}
