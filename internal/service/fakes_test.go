package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
)

type customerKey struct {
	id   int64
	name string
}

type memoryCustomers struct {
	mu   sync.Mutex
	rows map[customerKey]domain.Customer
}

func newMemoryCustomers() *memoryCustomers {
	return &memoryCustomers{rows: map[customerKey]domain.Customer{}}
}

func (m *memoryCustomers) Create(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := customerKey{c.CustomerID, c.Name}
	if _, ok := m.rows[key]; ok {
		return repository.ErrAlreadyExists
	}
	m.rows[key] = *c
	return nil
}

func (m *memoryCustomers) InsertIfAbsent(ctx context.Context, c *domain.Customer) (bool, error) {
	err := m.Create(ctx, c)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

func (m *memoryCustomers) Get(_ context.Context, id int64, name string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[customerKey{id, name}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *memoryCustomers) List(context.Context) ([]*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Customer, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, &c)
	}
	return out, nil
}

// Update persists only the mutable attributes, like the Postgres repository.
func (m *memoryCustomers) Update(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := customerKey{c.CustomerID, c.Name}
	stored, ok := m.rows[key]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Allergies = c.Allergies
	stored.FavouriteIcecreams = c.FavouriteIcecreams
	m.rows[key] = stored
	return nil
}

func (m *memoryCustomers) Delete(_ context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := customerKey{id, name}
	if _, ok := m.rows[key]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, key)
	return nil
}

type memoryStock struct {
	mu   sync.Mutex
	rows map[int64]domain.StockItem
}

func newMemoryStock() *memoryStock {
	return &memoryStock{rows: map[int64]domain.StockItem{}}
}

func (m *memoryStock) Create(_ context.Context, s *domain.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.IceCreamID]; ok {
		return repository.ErrAlreadyExists
	}
	m.rows[s.IceCreamID] = *s
	return nil
}

func (m *memoryStock) InsertIfAbsent(ctx context.Context, s *domain.StockItem) (bool, error) {
	err := m.Create(ctx, s)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

func (m *memoryStock) Get(_ context.Context, id int64) (*domain.StockItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memoryStock) List(context.Context) ([]*domain.StockItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.StockItem, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, &s)
	}
	return out, nil
}

func (m *memoryStock) Update(_ context.Context, s *domain.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rows[s.IceCreamID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = s.Name
	stored.Allergens = s.Allergens
	stored.Price = s.Price
	stored.InStock = s.InStock
	m.rows[s.IceCreamID] = stored
	return nil
}

func (m *memoryStock) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func credentialFor(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).SignedString([]byte("k"))
	require.NoError(t, err)
	return "Bearer " + token
}
