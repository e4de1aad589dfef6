package session

import (
	"context"

	"github.com/laboissim/labctl/internal/api"
	"github.com/laboissim/labctl/internal/token"
)

// refresh kicks off the dependent-data fan-out: directory, contact
// messages, account requests and internal messages, fetched
// concurrently. Each fetch re-checks the session before sending: an
// expired token ends the session instead of firing a doomed request.
// Individual failures degrade that one dataset and nothing else.
func (m *Manager) refresh(ctx context.Context) {
	m.spawn(func(bearer string) error {
		users, err := m.users.List(ctx, bearer)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.directory = users
		m.mu.Unlock()
		if m.cache != nil {
			if err := m.cache.ReplaceDirectory(users); err != nil {
				m.logger.Warn("failed to cache directory", "error", err)
			}
		}
		return nil
	})

	m.spawn(func(bearer string) error {
		msgs, err := m.messages.ListContact(ctx, bearer)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.contact = msgs
		m.mu.Unlock()
		if m.cache != nil {
			if err := m.cache.ReplaceContactMessages(msgs); err != nil {
				m.logger.Warn("failed to cache contact messages", "error", err)
			}
		}
		return nil
	})

	m.spawn(func(bearer string) error {
		reqs, err := m.messages.ListAccountRequests(ctx, bearer)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.requests = reqs
		m.mu.Unlock()
		if m.cache != nil {
			if err := m.cache.ReplaceAccountRequests(reqs); err != nil {
				m.logger.Warn("failed to cache account requests", "error", err)
			}
		}
		return nil
	})

	m.spawn(func(bearer string) error {
		msgs, err := m.messages.ListInternal(ctx, bearer)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.internal = msgs
		m.mu.Unlock()
		if m.cache != nil {
			if err := m.cache.ReplaceInternalMessages(msgs); err != nil {
				m.logger.Warn("failed to cache internal messages", "error", err)
			}
		}
		return nil
	})
}

// refreshDirectory re-fetches the user list alone, after an admin
// action changed it server-side.
func (m *Manager) refreshDirectory(ctx context.Context) {
	m.spawn(func(bearer string) error {
		users, err := m.users.List(ctx, bearer)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.directory = users
		m.mu.Unlock()
		if m.cache != nil {
			if err := m.cache.ReplaceDirectory(users); err != nil {
				m.logger.Warn("failed to cache directory", "error", err)
			}
		}
		return nil
	})
}

// spawn runs one fan-out fetch on its own goroutine. The bearer token
// is re-read and re-validated at call time: the session may have ended
// between scheduling and execution.
func (m *Manager) spawn(fetch func(bearer string) error) {
	m.fanout.Add(1)
	go func() {
		defer m.fanout.Done()

		m.mu.Lock()
		status, bearer := m.status, m.token
		m.mu.Unlock()

		if status != StatusAuthenticated || bearer == "" {
			return
		}
		if !token.Valid(bearer, m.now()) {
			m.logger.Warn("session token expired, ending session")
			m.Logout()
			return
		}

		if err := fetch(bearer); err != nil {
			if api.IsAuthFailure(err) {
				m.logger.Warn("session rejected by server, ending session", "error", err)
				m.Logout()
				return
			}
			m.logger.Warn("background refresh failed", "error", err)
		}
	}()
}

// Wait blocks until all in-flight background refreshes settle. The CLI
// calls it before printing fan-out data; tests call it for determinism.
func (m *Manager) Wait() {
	m.fanout.Wait()
}

// LoadCached fills the in-memory datasets from the offline cache. Used
// when the API is unreachable so the CLI can still show the last-known
// state. Never touches the session status.
func (m *Manager) LoadCached(store CacheReader) error {
	users, err := store.Directory()
	if err != nil {
		return err
	}
	contact, err := store.ContactMessages()
	if err != nil {
		return err
	}
	requests, err := store.AccountRequests()
	if err != nil {
		return err
	}
	internal, err := store.InternalMessages()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.directory = users
	m.contact = contact
	m.requests = requests
	m.internal = internal
	return nil
}
