package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/laboissim/labctl/internal/api"
	"github.com/laboissim/labctl/internal/config"
	"github.com/laboissim/labctl/internal/session"
	"github.com/laboissim/labctl/internal/storage/local"
	"github.com/laboissim/labctl/internal/storage/sqlite"
)

// app wires config, storage, API clients and the session manager for
// one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	manager      *session.Manager
	identity     *api.Identity
	users        *api.Users
	messages     *api.Messages
	events       *api.Events
	publications *api.Publications
	projects     *api.Projects
	content      *api.Content

	cache *sqlite.CacheStore
	db    *sqlite.DB
}

// newApp builds the dependency graph and restores the persisted
// session. Every command starts from a resolved session.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}

	creds, err := local.NewCredentialStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	client := api.New(api.Config{
		BaseURL:    cfg.Server.BaseURL,
		Timeout:    cfg.Server.Timeout(),
		Resilience: cfg.Resilience.Enabled,
		Logger:     logger,
	})

	a := &app{
		cfg:          cfg,
		logger:       logger,
		identity:     api.NewIdentity(client),
		users:        api.NewUsers(client),
		messages:     api.NewMessages(client),
		events:       api.NewEvents(client),
		publications: api.NewPublications(client),
		projects:     api.NewProjects(client),
		content:      api.NewContent(client),
	}

	var cache session.Cache
	if cfg.Cache.Enabled {
		db, err := sqlite.Open(filepath.Join(dir, "cache.db"))
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate cache: %w", err)
		}
		a.db = db
		a.cache = sqlite.NewCacheStore(db)
		cache = a.cache
	}

	a.manager = session.NewManager(session.Config{
		Identity:    a.identity,
		Users:       a.users,
		Messages:    a.messages,
		Credentials: creds,
		Cache:       cache,
		Logger:      logger,
	})

	if err := a.manager.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return a, nil
}

func (a *app) close() {
	a.manager.Wait()
	if a.db != nil {
		a.db.Close()
	}
}

// requireAuth returns the bearer token for a privileged command.
func (a *app) requireAuth() (string, error) {
	tok := a.manager.Token()
	if tok == "" || a.manager.Status() != session.StatusAuthenticated {
		return "", fmt.Errorf("not logged in (run 'labctl login <email>')")
	}
	return tok, nil
}

// authErr routes API failures through the session contract: a 401 ends
// the session before the error reaches the user.
func (a *app) authErr(err error) error {
	if api.IsAuthFailure(err) {
		a.logger.Warn("session rejected by server, logging out")
		a.manager.Logout()
		return fmt.Errorf("session expired, log in again: %w", err)
	}
	return err
}
