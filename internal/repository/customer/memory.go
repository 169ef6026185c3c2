package customer

import (
	"context"
	"strings"
	"sync"
	"time"

	"applestore-clone/internal/domain"
	"github.com/google/uuid"
)

// Memory keeps customers in process. It backs the memory document store and tests.
type Memory struct {
	mu        sync.RWMutex
	byID      map[string]domain.Customer
	bySubject map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		byID:      make(map[string]domain.Customer),
		bySubject: make(map[string]string),
	}
}

func (m *Memory) Upsert(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	key := c.Provider + "\x00" + c.Subject
	if id, ok := m.bySubject[key]; ok {
		existing := m.byID[id]
		existing.Email = strings.ToLower(c.Email)
		existing.DisplayName = c.DisplayName
		existing.LastSignIn = now
		m.byID[id] = existing
		return &existing, nil
	}

	c.ID = uuid.NewString()
	c.Email = strings.ToLower(c.Email)
	c.CreatedAt = now
	c.LastSignIn = now
	m.byID[c.ID] = c
	m.bySubject[key] = c.ID
	return &c, nil
}

func (m *Memory) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}
