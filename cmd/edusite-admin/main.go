// Command edusite-admin is the back-office console for the imtda site:
// it signs operators in, manages every content collection, and reviews
// internship and job applications.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/imtda/edusite/internal/app"
	"github.com/imtda/edusite/internal/config"
	"github.com/imtda/edusite/internal/domain/application"
	"github.com/imtda/edusite/internal/domain/contact"
	"github.com/imtda/edusite/internal/obs"
	"github.com/imtda/edusite/internal/session"
	"github.com/imtda/edusite/internal/storage"
)

func main() {
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address while the command runs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	backend, err := openBackend(cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	store := storage.New(backend, logger)
	defer store.Close()

	metrics := obs.NewMetrics()
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics listener error", "error", err)
			}
		}()
	}

	nav := &consoleNavigator{route: cfg.Routes.Home, logger: logger}
	shell := app.New(cfg, store, nav, logger, app.WithMetrics(metrics))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	shell.Bootstrap(ctx)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(ctx, shell, args, logger); err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, shell *app.App, args []string, logger *slog.Logger) error {
	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return login(ctx, shell, rest, false)
	case "admin-login":
		return login(ctx, shell, rest, true)
	case "register":
		if len(rest) < 3 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		user, err := shell.Session.Register(ctx, session.RegisterInput{
			Name: rest[0], Email: rest[1], Password: rest[2],
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s <%s>\n", user.Name, user.Email)
		return nil
	case "logout":
		shell.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "whoami":
		user, ok := shell.Session.CurrentUser()
		if !ok {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
		return nil
	case "list":
		if len(rest) < 1 {
			return fmt.Errorf("usage: list <entity>")
		}
		return list(ctx, shell, rest[0])
	case "save":
		if len(rest) < 1 {
			return fmt.Errorf("usage: save <entity> < record.json")
		}
		return save(ctx, shell, rest[0], os.Stdin)
	case "delete":
		if len(rest) < 2 {
			return fmt.Errorf("usage: delete <entity> <id>")
		}
		return remove(ctx, shell, rest[0], rest[1])
	case "approve":
		if len(rest) < 1 {
			return fmt.Errorf("usage: approve <application-id>")
		}
		return review(ctx, shell, rest[0], application.StatusApproved)
	case "reject":
		if len(rest) < 1 {
			return fmt.Errorf("usage: reject <application-id>")
		}
		return review(ctx, shell, rest[0], application.StatusRejected)
	case "contact":
		if len(rest) < 3 {
			return fmt.Errorf("usage: contact <name> <email> <message...>")
		}
		return shell.Messages.Submit(ctx, contact.Message{
			Name:  rest[0],
			Email: rest[1],
			Body:  strings.Join(rest[2:], " "),
		})
	case "watch":
		if len(rest) < 1 {
			return fmt.Errorf("usage: watch <entity> [interval]")
		}
		interval := 30 * time.Second
		if len(rest) > 1 {
			parsed, err := time.ParseDuration(rest[1])
			if err != nil {
				return fmt.Errorf("invalid interval: %w", err)
			}
			interval = parsed
		}
		return watch(ctx, shell, rest[0], interval, logger)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func login(ctx context.Context, shell *app.App, rest []string, admin bool) error {
	if len(rest) < 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	creds := session.Credentials{Email: rest[0], Password: rest[1]}
	var (
		user session.User
		err  error
	)
	if admin {
		user, err = shell.Session.AdminLogin(ctx, creds)
	} else {
		user, err = shell.Session.Login(ctx, creds)
	}
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s> role=%s\n", user.Name, user.Email, user.Role)
	return nil
}

func list(ctx context.Context, shell *app.App, entity string) error {
	items, err := collect(ctx, shell, entity)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

// collect runs EnsureLoaded on the matching container and returns a
// printable copy of its items.
func collect(ctx context.Context, shell *app.App, entity string) (any, error) {
	load := func(ok bool, err error, items any) (any, error) {
		if !ok {
			return nil, fmt.Errorf("sign in to view %s", entity)
		}
		if err != nil {
			return nil, err
		}
		return items, nil
	}
	switch entity {
	case "posts":
		ok := shell.Posts.EnsureLoaded(ctx)
		return load(ok, shell.Posts.Err(), shell.Posts.Items())
	case "internships":
		ok := shell.Internships.EnsureLoaded(ctx)
		return load(ok, shell.Internships.Err(), shell.Internships.Items())
	case "training":
		ok := shell.Training.EnsureLoaded(ctx)
		return load(ok, shell.Training.Err(), shell.Training.Items())
	case "projects":
		ok := shell.Projects.EnsureLoaded(ctx)
		return load(ok, shell.Projects.Err(), shell.Projects.Items())
	case "employees":
		ok := shell.Employees.EnsureLoaded(ctx)
		return load(ok, shell.Employees.Err(), shell.Employees.Items())
	case "jobs":
		ok := shell.Jobs.EnsureLoaded(ctx)
		return load(ok, shell.Jobs.Err(), shell.Jobs.Items())
	case "services":
		ok := shell.Offerings.EnsureLoaded(ctx)
		return load(ok, shell.Offerings.Err(), shell.Offerings.Items())
	case "testimonials":
		ok := shell.Testimonials.EnsureLoaded(ctx)
		return load(ok, shell.Testimonials.Err(), shell.Testimonials.Items())
	case "messages":
		ok := shell.Messages.EnsureLoaded(ctx)
		return load(ok, shell.Messages.Err(), shell.Messages.Items())
	case "applications":
		ok := shell.Applications.EnsureLoaded(ctx)
		return load(ok, shell.Applications.Err(), shell.Applications.Items())
	}
	return nil, fmt.Errorf("unknown entity %q", entity)
}

func save(ctx context.Context, shell *app.App, entity string, input *os.File) error {
	decoder := json.NewDecoder(input)
	switch entity {
	case "posts":
		return decodeAndSave(ctx, decoder, shell.Posts.Save)
	case "internships":
		return decodeAndSave(ctx, decoder, shell.Internships.Save)
	case "training":
		return decodeAndSave(ctx, decoder, shell.Training.Save)
	case "projects":
		return decodeAndSave(ctx, decoder, shell.Projects.Save)
	case "employees":
		return decodeAndSave(ctx, decoder, shell.Employees.Save)
	case "jobs":
		return decodeAndSave(ctx, decoder, shell.Jobs.Save)
	case "services":
		return decodeAndSave(ctx, decoder, shell.Offerings.Save)
	case "testimonials":
		return decodeAndSave(ctx, decoder, shell.Testimonials.Save)
	}
	return fmt.Errorf("unknown entity %q", entity)
}

func decodeAndSave[T any](ctx context.Context, decoder *json.Decoder, save func(context.Context, T) error) error {
	var record T
	if err := decoder.Decode(&record); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return save(ctx, record)
}

func remove(ctx context.Context, shell *app.App, entity, id string) error {
	switch entity {
	case "posts":
		return shell.Posts.Delete(ctx, id)
	case "internships":
		return shell.Internships.Delete(ctx, id)
	case "training":
		return shell.Training.Delete(ctx, id)
	case "projects":
		return shell.Projects.Delete(ctx, id)
	case "employees":
		return shell.Employees.Delete(ctx, id)
	case "jobs":
		return shell.Jobs.Delete(ctx, id)
	case "services":
		return shell.Offerings.Delete(ctx, id)
	case "testimonials":
		return shell.Testimonials.Delete(ctx, id)
	case "messages":
		return shell.Messages.Delete(ctx, id)
	case "applications":
		return shell.Applications.Delete(ctx, id)
	}
	return fmt.Errorf("unknown entity %q", entity)
}

func review(ctx context.Context, shell *app.App, id string, status application.Status) error {
	if !shell.Applications.EnsureLoaded(ctx) {
		return fmt.Errorf("sign in to review applications")
	}
	if err := shell.Applications.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Printf("application %s -> %s\n", id, status)
	return nil
}

func watch(ctx context.Context, shell *app.App, entity string, interval time.Duration, logger *slog.Logger) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		items, err := collect(ctx, shell, entity)
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		if err := encoder.Encode(items); err != nil {
			return err
		}
		logger.Debug("watch tick", "entity", entity)
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", "entity", entity)
			return nil
		case <-timer.C:
		}
		timer.Reset(interval)
		// Force a refresh on the next pass.
		if err := reload(ctx, shell, entity); err != nil {
			return err
		}
	}
}

func reload(ctx context.Context, shell *app.App, entity string) error {
	switch entity {
	case "posts":
		shell.Posts.Load(ctx)
	case "internships":
		shell.Internships.Load(ctx)
	case "training":
		shell.Training.Load(ctx)
	case "projects":
		shell.Projects.Load(ctx)
	case "employees":
		shell.Employees.Load(ctx)
	case "jobs":
		shell.Jobs.Load(ctx)
	case "services":
		shell.Offerings.Load(ctx)
	case "testimonials":
		shell.Testimonials.Load(ctx)
	case "messages":
		shell.Messages.Load(ctx)
	case "applications":
		shell.Applications.Load(ctx)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: edusite-admin [flags] <command>

commands:
  login <email> <password>          sign in as a student
  admin-login <email> <password>    sign in as an operator
  register <name> <email> <pass>    create a student account
  logout                            sign out and reset local state
  whoami                            print the current user
  list <entity>                     print a collection as JSON
  save <entity> < record.json       create or update one record
  delete <entity> <id>              remove one record
  approve|reject <application-id>   review an application
  contact <name> <email> <msg...>   send a contact-form message
  watch <entity> [interval]         poll a collection

entities: posts internships training projects employees jobs services
          testimonials messages applications`)
}

// consoleNavigator stands in for the browser history: route changes are
// logged so 401 redirects and the post-logout reset stay observable.
type consoleNavigator struct {
	route  string
	logger *slog.Logger
}

func (n *consoleNavigator) NavigateTo(route string) {
	n.route = route
	n.logger.Info("navigate", "route", route)
}

func (n *consoleNavigator) CurrentRoute() string { return n.route }

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openBackend(cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryBackend(), nil
	case "file", "":
		return storage.NewFileBackend(cfg.Path)
	case "sqlite":
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, err
		}
		return storage.NewSQLiteBackend(filepath.Join(cfg.Path, "state.db"))
	case "redis":
		return storage.NewRedisBackend(cfg.RedisAddr, "edusite:"), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
