// Package cache is the explicit client-side document cache that replaces ad
// hoc post-mutation list state. Entries are keyed by document id and merged
// on every accepted mutation: creates and patches put the returned document,
// deletes evict, full list reloads flush and re-prime.
package cache

import (
	"context"
	"sync"
)

// DocumentCache stores raw document JSON keyed by document id.
// Get returns (nil, nil) on a miss.
type DocumentCache interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, id string, doc []byte) error
	Delete(ctx context.Context, id string) error
	Flush(ctx context.Context) error
}

// Memory is the default in-process DocumentCache.
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{docs: map[string][]byte{}}
}

func (m *Memory) Get(ctx context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	// copy so callers cannot mutate the cached bytes
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (m *Memory) Put(ctx context.Context, id string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(doc))
	copy(stored, doc)
	m.docs[id] = stored
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *Memory) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = map[string][]byte{}
	return nil
}
