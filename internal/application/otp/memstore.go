package otp

import (
	"context"
	"fmt"
	"sync"

	"github.com/oceanpet/api/internal/domain"
)

// MemStore is an in-memory Store keyed by email. It backs single-node
// deployments without DynamoDB and the test suite.
type MemStore struct {
	mu   sync.Mutex
	recs map[string]domain.EmailOTP
}

func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[string]domain.EmailOTP)}
}

func (m *MemStore) Put(_ context.Context, o *domain.EmailOTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[o.Email] = *o
	return nil
}

func (m *MemStore) Get(_ context.Context, email string) (*domain.EmailOTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[email]
	if !ok {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (m *MemStore) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, email)
	return nil
}
