package docstore

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store. It stands in for the hosted store in tests and local runs.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]map[string]interface{})}
}

func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, Document{ID: id, Fields: cloneFields(docs[id])})
	}
	return out, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]map[string]interface{})
	}
	m.collections[collection][id] = cloneFields(fields)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

// Get returns a single document, or false when it does not exist.
func (m *Memory) Get(collection, id string) (Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.collections[collection][id]
	if !ok {
		return Document{}, false
	}
	return Document{ID: id, Fields: cloneFields(fields)}, true
}
