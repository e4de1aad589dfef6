package session

import (
	"context"
	"sync"

	"github.com/laboissim/labctl/internal/domain"
	"github.com/laboissim/labctl/internal/storage/local"
)

type stubIdentity struct {
	mu            sync.Mutex
	exchangeFn    func(ctx context.Context, email, password string) (string, error)
	currentFn     func(ctx context.Context, bearer string) (domain.UserProfile, error)
	exchangeCalls int
	currentCalls  int
}

func (s *stubIdentity) ExchangeCredentials(ctx context.Context, email, password string) (string, error) {
	s.mu.Lock()
	s.exchangeCalls++
	fn := s.exchangeFn
	s.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx, email, password)
}

func (s *stubIdentity) CurrentUser(ctx context.Context, bearer string) (domain.UserProfile, error) {
	s.mu.Lock()
	s.currentCalls++
	fn := s.currentFn
	s.mu.Unlock()
	if fn == nil {
		return domain.UserProfile{}, nil
	}
	return fn(ctx, bearer)
}

func (s *stubIdentity) calls() (exchange, current int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchangeCalls, s.currentCalls
}

type stubUsers struct {
	mu           sync.Mutex
	listFn       func(ctx context.Context, bearer string) ([]domain.UserProfile, error)
	updateRoleFn func(ctx context.Context, bearer, userID string, role domain.Role) error
	banFn        func(ctx context.Context, bearer, userID string) error
	unbanFn      func(ctx context.Context, bearer, userID string) error
	deleteFn     func(ctx context.Context, bearer, userID string) error
	listCalls    int
}

func (s *stubUsers) List(ctx context.Context, bearer string) ([]domain.UserProfile, error) {
	s.mu.Lock()
	s.listCalls++
	fn := s.listFn
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, bearer)
}

func (s *stubUsers) UpdateRole(ctx context.Context, bearer, userID string, role domain.Role) error {
	if s.updateRoleFn == nil {
		return nil
	}
	return s.updateRoleFn(ctx, bearer, userID, role)
}

func (s *stubUsers) Ban(ctx context.Context, bearer, userID string) error {
	if s.banFn == nil {
		return nil
	}
	return s.banFn(ctx, bearer, userID)
}

func (s *stubUsers) Unban(ctx context.Context, bearer, userID string) error {
	if s.unbanFn == nil {
		return nil
	}
	return s.unbanFn(ctx, bearer, userID)
}

func (s *stubUsers) Delete(ctx context.Context, bearer, userID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, bearer, userID)
}

func (s *stubUsers) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

type stubMessages struct {
	listContactFn  func(ctx context.Context, bearer string) ([]domain.ContactMessage, error)
	listRequestsFn func(ctx context.Context, bearer string) ([]domain.AccountRequest, error)
	listInternalFn func(ctx context.Context, bearer string) ([]domain.InternalMessage, error)
	unreadFn       func(ctx context.Context, bearer, userID string) (int, error)
}

func (s *stubMessages) ListContact(ctx context.Context, bearer string) ([]domain.ContactMessage, error) {
	if s.listContactFn == nil {
		return nil, nil
	}
	return s.listContactFn(ctx, bearer)
}

func (s *stubMessages) ListAccountRequests(ctx context.Context, bearer string) ([]domain.AccountRequest, error) {
	if s.listRequestsFn == nil {
		return nil, nil
	}
	return s.listRequestsFn(ctx, bearer)
}

func (s *stubMessages) ListInternal(ctx context.Context, bearer string) ([]domain.InternalMessage, error) {
	if s.listInternalFn == nil {
		return nil, nil
	}
	return s.listInternalFn(ctx, bearer)
}

func (s *stubMessages) UnreadCount(ctx context.Context, bearer, userID string) (int, error) {
	if s.unreadFn == nil {
		return 0, nil
	}
	return s.unreadFn(ctx, bearer, userID)
}

// memCreds is an in-memory credential store recording every write.
type memCreds struct {
	mu      sync.Mutex
	stored  *local.Credentials
	saves   []local.Credentials
	clears  int
	saveErr error
	loadErr error
}

func (s *memCreds) Save(creds local.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	c := creds
	s.stored = &c
	s.saves = append(s.saves, creds)
	return nil
}

func (s *memCreds) Load() (local.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return local.Credentials{}, s.loadErr
	}
	if s.stored == nil {
		return local.Credentials{}, local.ErrNotFound
	}
	return *s.stored, nil
}

func (s *memCreds) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = nil
	s.clears++
	return nil
}

func (s *memCreds) savedRecords() []local.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]local.Credentials(nil), s.saves...)
}

func (s *memCreds) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// memCache records replace-all snapshots.
type memCache struct {
	mu        sync.Mutex
	directory []domain.UserProfile
	contact   []domain.ContactMessage
	requests  []domain.AccountRequest
	internal  []domain.InternalMessage
	clears    int
}

func (c *memCache) ReplaceDirectory(users []domain.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.directory = users
	return nil
}

func (c *memCache) ReplaceContactMessages(msgs []domain.ContactMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contact = msgs
	return nil
}

func (c *memCache) ReplaceAccountRequests(reqs []domain.AccountRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = reqs
	return nil
}

func (c *memCache) ReplaceInternalMessages(msgs []domain.InternalMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.internal = msgs
	return nil
}

func (c *memCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.directory = nil
	c.contact = nil
	c.requests = nil
	c.internal = nil
	c.clears++
	return nil
}

func (c *memCache) Directory() ([]domain.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.UserProfile(nil), c.directory...), nil
}

func (c *memCache) ContactMessages() ([]domain.ContactMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ContactMessage(nil), c.contact...), nil
}

func (c *memCache) AccountRequests() ([]domain.AccountRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AccountRequest(nil), c.requests...), nil
}

func (c *memCache) InternalMessages() ([]domain.InternalMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.InternalMessage(nil), c.internal...), nil
}

func (c *memCache) clearCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

func (c *memCache) directorySnapshot() []domain.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.UserProfile(nil), c.directory...)
}
