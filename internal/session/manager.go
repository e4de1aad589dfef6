package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/laboissim/labctl/internal/api"
	"github.com/laboissim/labctl/internal/domain"
	"github.com/laboissim/labctl/internal/storage/local"
	"github.com/laboissim/labctl/internal/token"
)

// Manager is the session state machine. One instance per process; all
// screens share it and never touch storage or token decode directly.
type Manager struct {
	identity IdentityAPI
	users    UsersAPI
	messages MessagesAPI
	creds    CredentialStore
	cache    Cache
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	status    Status
	token     string
	user      *domain.UserProfile
	connected []domain.UserProfile
	directory []domain.UserProfile
	contact   []domain.ContactMessage
	requests  []domain.AccountRequest
	internal  []domain.InternalMessage
	loginBusy bool

	fanout sync.WaitGroup
}

// Config wires the manager's collaborators.
type Config struct {
	Identity    IdentityAPI
	Users       UsersAPI
	Messages    MessagesAPI
	Credentials CredentialStore

	// Cache is optional; nil disables offline snapshots.
	Cache Cache

	// Logger for swallowed fan-out errors. Nil uses slog.Default.
	Logger *slog.Logger

	// Now overrides the clock, for tests. Nil uses time.Now.
	Now func() time.Time
}

// NewManager creates a session manager in the uninitialized state.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		identity: cfg.Identity,
		users:    cfg.Users,
		messages: cfg.Messages,
		creds:    cfg.Credentials,
		cache:    cfg.Cache,
		logger:   logger,
		now:      now,
		status:   StatusUninitialized,
	}
}

// Status returns the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the current user snapshot, if authenticated.
func (m *Manager) User() (domain.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return domain.UserProfile{}, false
	}
	return *m.user, true
}

// Token returns the current bearer token, or the empty string.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Directory returns the session's cached user list.
func (m *Manager) Directory() []domain.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.UserProfile(nil), m.directory...)
}

// ConnectedUsers returns the users with a live session (in this
// single-client model, the current user).
func (m *Manager) ConnectedUsers() []domain.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.UserProfile(nil), m.connected...)
}

// ContactMessages returns the last fetched contact messages.
func (m *Manager) ContactMessages() []domain.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ContactMessage(nil), m.contact...)
}

// AccountRequests returns the last fetched account requests.
func (m *Manager) AccountRequests() []domain.AccountRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AccountRequest(nil), m.requests...)
}

// InternalMessages returns the last fetched internal messages.
func (m *Manager) InternalMessages() []domain.InternalMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.InternalMessage(nil), m.internal...)
}

// AuthHeaders returns the headers for a privileged call. Callers must
// not send unauthenticated requests to privileged endpoints, so a
// missing token is an error, not an empty header set.
func (m *Manager) AuthHeaders() (http.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return nil, ErrUnauthenticated
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+m.token)
	return h, nil
}

// Restore resolves the persisted session at startup. It runs exactly
// once: a token in storage is validated against the profile endpoint;
// with no token, a cached user snapshot is accepted in soft-trust mode;
// otherwise the session is anonymous. Profile failure purges storage
// and resolves anonymous with no retry.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.status != StatusUninitialized {
		m.mu.Unlock()
		return ErrAlreadyRestored
	}
	m.status = StatusRestoring
	m.mu.Unlock()

	creds, err := m.creds.Load()
	if err != nil {
		if !errors.Is(err, local.ErrNotFound) {
			m.logger.Warn("failed to read stored credentials", "error", err)
		}
		m.resolve(StatusAnonymous, "", nil)
		return nil
	}

	if creds.Token == "" {
		// Soft-trust mode: no token to validate, accept the cached
		// snapshot as-is. Used only for legacy local sessions.
		if creds.User != nil {
			m.resolve(StatusAuthenticated, "", creds.User)
			return nil
		}
		m.resolve(StatusAnonymous, "", nil)
		return nil
	}

	if !token.Valid(creds.Token, m.now()) {
		m.purge()
		m.resolve(StatusAnonymous, "", nil)
		return nil
	}

	user, err := m.identity.CurrentUser(ctx, creds.Token)
	if err != nil {
		m.purge()
		m.resolve(StatusAnonymous, "", nil)
		return nil
	}

	if err := m.creds.Save(local.Credentials{Token: creds.Token, User: &user}); err != nil {
		m.logger.Warn("failed to persist restored session", "error", err)
	}
	m.resolve(StatusAuthenticated, creds.Token, &user)
	m.refresh(ctx)
	return nil
}

// resolve finishes the restore sequence.
func (m *Manager) resolve(status Status, bearer string, user *domain.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.token = bearer
	m.user = user
	if user != nil {
		m.connected = []domain.UserProfile{*user}
	} else {
		m.connected = nil
	}
}

// Login exchanges credentials for a token and builds the session. It
// returns false on rejected credentials without touching session state;
// it returns true only once both the exchange and the profile fetch
// have succeeded. Transport failures are returned as errors so the
// caller can distinguish them from bad credentials.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, error) {
	m.mu.Lock()
	if m.status == StatusRestoring {
		m.mu.Unlock()
		return false, ErrRestoring
	}
	if m.loginBusy {
		m.mu.Unlock()
		return false, ErrLoginInFlight
	}
	m.loginBusy = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loginBusy = false
		m.mu.Unlock()
	}()

	bearer, err := m.identity.ExchangeCredentials(ctx, email, password)
	if err != nil {
		if rejectedCredentials(err) {
			return false, nil
		}
		return false, fmt.Errorf("credential exchange: %w", err)
	}

	// The profile call depends on the token, so it is persisted first.
	// Session state flips only after the profile call succeeds.
	if err := m.creds.Save(local.Credentials{Token: bearer}); err != nil {
		return false, fmt.Errorf("persist token: %w", err)
	}

	user, err := m.identity.CurrentUser(ctx, bearer)
	if err != nil {
		// A login is only successful once a profile is obtainable.
		m.purge()
		if api.IsAuthFailure(err) {
			return false, nil
		}
		return false, fmt.Errorf("profile fetch: %w", err)
	}

	if err := m.creds.Save(local.Credentials{Token: bearer, User: &user}); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.status = StatusAuthenticated
	m.token = bearer
	m.user = &user
	m.connected = []domain.UserProfile{user}
	m.mu.Unlock()

	m.refresh(ctx)
	return true, nil
}

// Logout tears the session down. Unconditional, idempotent, never
// fails: storage errors are logged and ignored.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.status = StatusAnonymous
	m.token = ""
	m.user = nil
	m.connected = nil
	m.directory = nil
	m.contact = nil
	m.requests = nil
	m.internal = nil
	m.mu.Unlock()

	m.purge()
}

// purge clears persisted credentials and the offline cache.
func (m *Manager) purge() {
	if err := m.creds.Clear(); err != nil {
		m.logger.Warn("failed to clear stored credentials", "error", err)
	}
	if m.cache != nil {
		if err := m.cache.Clear(); err != nil {
			m.logger.Warn("failed to clear offline cache", "error", err)
		}
	}
}

// SetUserFromToken builds a provisional session from the token's own
// claims, with no server confirmation — the entry path for third-party
// sign-in callbacks. A token that fails to decode, or is already
// expired, tears the session down.
func (m *Manager) SetUserFromToken(bearer string) error {
	claims, err := token.Decode(bearer)
	if err != nil {
		m.Logout()
		return err
	}
	if claims.Expired(m.now()) {
		m.Logout()
		return token.ErrExpired
	}

	user := claims.Profile(m.now())
	if err := m.creds.Save(local.Credentials{Token: bearer, User: &user}); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.status = StatusAuthenticated
	m.token = bearer
	m.user = &user
	m.connected = []domain.UserProfile{user}
	m.mu.Unlock()

	m.refresh(context.Background())
	return nil
}

// UpdateRole changes a user's role. A successful self-role-change takes
// effect on the session immediately, without re-login or re-fetch.
func (m *Manager) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	bearer, err := m.requireToken()
	if err != nil {
		return err
	}

	if err := m.users.UpdateRole(ctx, bearer, userID, role); err != nil {
		return m.handlePrivilegedError(err)
	}

	m.mu.Lock()
	for i := range m.directory {
		if m.directory[i].ID == userID {
			m.directory[i] = m.directory[i].WithRole(role)
		}
	}
	var persist *local.Credentials
	if m.user != nil && m.user.ID == userID {
		updated := m.user.WithRole(role)
		m.user = &updated
		m.connected = []domain.UserProfile{updated}
		persist = &local.Credentials{Token: m.token, User: &updated}
	}
	m.mu.Unlock()

	if persist != nil {
		if err := m.creds.Save(*persist); err != nil {
			m.logger.Warn("failed to persist role change", "error", err)
		}
	}
	return nil
}

// Ban deactivates a user. A successful self-ban ends the session.
func (m *Manager) Ban(ctx context.Context, userID string) error {
	return m.userLifecycle(ctx, userID, true, func(ctx context.Context, bearer string) error {
		return m.users.Ban(ctx, bearer, userID)
	})
}

// Unban reactivates a user.
func (m *Manager) Unban(ctx context.Context, userID string) error {
	return m.userLifecycle(ctx, userID, false, func(ctx context.Context, bearer string) error {
		return m.users.Unban(ctx, bearer, userID)
	})
}

// Delete removes a user. A successful self-delete ends the session.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.userLifecycle(ctx, userID, true, func(ctx context.Context, bearer string) error {
		return m.users.Delete(ctx, bearer, userID)
	})
}

// userLifecycle runs one admin action. On success the user list is
// re-fetched whole rather than patched locally, so client state cannot
// drift from server truth. Acting on the current user ends the session
// when the action revokes access.
func (m *Manager) userLifecycle(ctx context.Context, userID string, terminal bool, action func(ctx context.Context, bearer string) error) error {
	bearer, err := m.requireToken()
	if err != nil {
		return err
	}

	if err := action(ctx, bearer); err != nil {
		return m.handlePrivilegedError(err)
	}

	if terminal {
		if user, ok := m.User(); ok && user.ID == userID {
			m.Logout()
			return nil
		}
	}

	m.refreshDirectory(ctx)
	return nil
}

// requireToken returns the bearer token or ErrUnauthenticated, and
// rejects calls while restore is still resolving.
func (m *Manager) requireToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusRestoring {
		return "", ErrRestoring
	}
	if m.token == "" {
		return "", ErrUnauthenticated
	}
	return m.token, nil
}

// rejectedCredentials reports whether a failed credential exchange means
// the credentials themselves were refused, as opposed to the server or
// network failing. Only a definitive refusal counts.
func rejectedCredentials(err error) bool {
	if errors.Is(err, api.ErrNoAccessToken) {
		return true
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest
}

// handlePrivilegedError maps a failed privileged call to the session
// contract: an authorization failure tears the session down, anything
// else leaves state untouched and surfaces to the caller.
func (m *Manager) handlePrivilegedError(err error) error {
	if api.IsAuthFailure(err) {
		m.logger.Warn("privileged call rejected, ending session", "error", err)
		m.Logout()
	}
	return err
}

// Notifications aggregates the dashboard counters from the last
// fan-out results plus a live unread count.
func (m *Manager) Notifications(ctx context.Context) (domain.Notifications, error) {
	bearer, err := m.requireToken()
	if err != nil {
		return domain.Notifications{}, err
	}

	unread, err := m.messages.UnreadCount(ctx, bearer, "")
	if err != nil {
		if api.IsAuthFailure(err) {
			return domain.Notifications{}, m.handlePrivilegedError(err)
		}
		// Degraded: counter unavailable, fall back to zero
		m.logger.Warn("failed to fetch unread count", "error", err)
		unread = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := domain.Notifications{UnreadInternalMessages: unread}
	for _, msg := range m.contact {
		if msg.Status == domain.ContactNew {
			n.NewContactMessages++
		}
	}
	for _, req := range m.requests {
		if req.Status == domain.RequestPending {
			n.PendingRequests++
		}
	}
	return n, nil
}
