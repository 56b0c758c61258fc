package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// MemoryCredentialRepository keeps ledger records in process memory. It is
// only suitable for a single instance.
type MemoryCredentialRepository struct {
	mu        sync.RWMutex
	byAccess  map[string]domain.CredentialRecord
	byIDToken map[string]map[string]struct{}
}

// NewMemoryCredentialRepository creates an empty store.
func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		byAccess:  make(map[string]domain.CredentialRecord),
		byIDToken: make(map[string]map[string]struct{}),
	}
}

func (r *MemoryCredentialRepository) Put(_ context.Context, record *domain.CredentialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byAccess[record.AccessToken]; ok && prev.IDToken != record.IDToken {
		delete(r.byIDToken[prev.IDToken], prev.AccessToken)
	}
	r.byAccess[record.AccessToken] = *record
	idx, ok := r.byIDToken[record.IDToken]
	if !ok {
		idx = make(map[string]struct{})
		r.byIDToken[record.IDToken] = idx
	}
	idx[record.AccessToken] = struct{}{}
	return nil
}

func (r *MemoryCredentialRepository) Get(_ context.Context, accessToken string) (*domain.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byAccess[accessToken]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (r *MemoryCredentialRepository) MarkRevoked(_ context.Context, accessToken string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byAccess[accessToken]
	if !ok {
		return ErrNotFound
	}
	record.Revoked = true
	record.RevokedAt = &at
	r.byAccess[accessToken] = record
	return nil
}

func (r *MemoryCredentialRepository) QueryByIDToken(_ context.Context, idToken string) ([]domain.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []domain.CredentialRecord
	for accessToken := range r.byIDToken[idToken] {
		records = append(records, r.byAccess[accessToken])
	}
	return records, nil
}

// Len returns the number of stored records.
func (r *MemoryCredentialRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byAccess)
}
