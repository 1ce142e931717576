package memory

import (
	"context"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore is an in-memory implementation of driven.CredentialsStore.
type CredentialsStore struct {
	mu    sync.RWMutex
	creds map[string]domain.Credentials
}

// NewCredentialsStore creates a new in-memory credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{creds: make(map[string]domain.Credentials)}
}

// Save stores credentials, replacing any other credentials for the same provider.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	if creds.ID == "" || creds.Provider == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.creds {
		if existing.Provider == creds.Provider && id != creds.ID {
			delete(s.creds, id)
		}
	}
	s.creds[creds.ID] = creds
	return nil
}

// Get retrieves credentials by ID.
func (s *CredentialsStore) Get(_ context.Context, id string) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.creds[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &creds, nil
}

// GetByProvider retrieves the credentials issued by a provider, or nil.
func (s *CredentialsStore) GetByProvider(_ context.Context, provider string) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, creds := range s.creds {
		if creds.Provider == provider {
			c := creds
			return &c, nil
		}
	}
	return nil, nil
}

// Delete removes credentials by ID.
func (s *CredentialsStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, id)
	return nil
}
