// Package session owns the authenticated-session lifecycle: token
// acquisition, validation and decode, the derived user snapshot, the
// dependent-data refresh fan-out, and teardown. Screens never talk to
// storage or token validation directly; they hold a Manager and call
// its operations.
package session

import (
	"context"
	"errors"

	"github.com/laboissim/labctl/internal/domain"
	"github.com/laboissim/labctl/internal/storage/local"
)

// Status is the session lifecycle state.
type Status string

const (
	// StatusUninitialized is the state before Restore has run.
	StatusUninitialized Status = "uninitialized"

	// StatusRestoring is entered exactly once, during Restore. It must
	// resolve to Authenticated or Anonymous before privileged
	// operations may run.
	StatusRestoring Status = "restoring"

	// StatusAuthenticated means a user snapshot is present and the
	// token (when one exists) is unexpired.
	StatusAuthenticated Status = "authenticated"

	// StatusAnonymous means no session: no token, no user.
	StatusAnonymous Status = "anonymous"
)

var (
	// ErrUnauthenticated means an operation requiring a token ran with
	// none present. Never auto-recovered.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrLoginInFlight means a Login call is already in progress; the
	// second caller is rejected rather than raced.
	ErrLoginInFlight = errors.New("login already in progress")

	// ErrRestoring means an operation ran before Restore resolved.
	ErrRestoring = errors.New("session restore in progress")

	// ErrAlreadyRestored means Restore was called twice.
	ErrAlreadyRestored = errors.New("session already restored")
)

// IdentityAPI is the credential-exchange and profile surface the
// manager depends on.
type IdentityAPI interface {
	ExchangeCredentials(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, bearer string) (domain.UserProfile, error)
}

// UsersAPI is the directory and admin user-lifecycle surface.
type UsersAPI interface {
	List(ctx context.Context, bearer string) ([]domain.UserProfile, error)
	UpdateRole(ctx context.Context, bearer, userID string, role domain.Role) error
	Ban(ctx context.Context, bearer, userID string) error
	Unban(ctx context.Context, bearer, userID string) error
	Delete(ctx context.Context, bearer, userID string) error
}

// MessagesAPI is the slice of the messaging surface the fan-out uses.
type MessagesAPI interface {
	ListContact(ctx context.Context, bearer string) ([]domain.ContactMessage, error)
	ListAccountRequests(ctx context.Context, bearer string) ([]domain.AccountRequest, error)
	ListInternal(ctx context.Context, bearer string) ([]domain.InternalMessage, error)
	UnreadCount(ctx context.Context, bearer, userID string) (int, error)
}

// CredentialStore persists the token and cached user snapshot across
// runs. Both are cleared together.
type CredentialStore interface {
	Save(creds local.Credentials) error
	Load() (local.Credentials, error)
	Clear() error
}

// CacheReader reads back the offline snapshots.
type CacheReader interface {
	Directory() ([]domain.UserProfile, error)
	ContactMessages() ([]domain.ContactMessage, error)
	AccountRequests() ([]domain.AccountRequest, error)
	InternalMessages() ([]domain.InternalMessage, error)
}

// Cache receives fan-out snapshots for offline reads. Optional.
type Cache interface {
	ReplaceDirectory(users []domain.UserProfile) error
	ReplaceContactMessages(msgs []domain.ContactMessage) error
	ReplaceAccountRequests(reqs []domain.AccountRequest) error
	ReplaceInternalMessages(msgs []domain.InternalMessage) error
	Clear() error
}
