// Package local persists the bearer token and the cached user snapshot
// between runs. The two are one record: they are written together and
// cleared together, on logout and on any authorization failure.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/laboissim/labctl/internal/domain"
)

// ErrNotFound indicates no credentials are stored.
var ErrNotFound = errors.New("credentials not found")

// Credentials is the persisted session record. User is a derived
// snapshot, kept only as the anonymous-token fallback for legacy local
// sessions; with a token present it is always rebuilt from the profile
// endpoint.
type Credentials struct {
	Token string              `json:"token,omitempty"`
	User  *domain.UserProfile `json:"user,omitempty"`
}

// CredentialStore is a single-file JSON store with owner-only
// permissions.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

// NewCredentialStore creates a store at dir/credentials.json.
func NewCredentialStore(dir string) (*CredentialStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &CredentialStore{path: filepath.Join(dir, "credentials.json")}, nil
}

// Save writes the credentials, replacing any previous record.
func (s *CredentialStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	// Token material: owner read/write only
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Load reads the stored credentials.
func (s *CredentialStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return creds, nil
}

// Clear removes the stored credentials. Clearing an empty store is not
// an error.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
