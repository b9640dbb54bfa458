package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/imrishuroy/storefront-admin/internal/store"
)

// mockStore is an in-memory fake of the document store. It holds schemaless
// documents keyed by _id and interprets exactly the named queries this
// package issues, including the image asset dereference projection.
type mockStore struct {
	mu       sync.Mutex
	docs     map[string]map[string]interface{}
	assets   map[string]string // asset id -> url
	nextID   int
	fetchErr error // when set, every Fetch fails; mutations still work
}

func newMockStore() *mockStore {
	return &mockStore{
		docs:   map[string]map[string]interface{}{},
		assets: map[string]string{},
	}
}

func (m *mockStore) Fetch(ctx context.Context, query string, params map[string]interface{}, opts store.FetchOptions) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	switch query {
	case queryListProducts:
		out := []map[string]interface{}{}
		for _, d := range m.docs {
			if d["_type"] == "product" {
				out = append(out, m.project(d))
			}
		}
		return json.Marshal(out)
	case queryProductByID:
		id, _ := params["productId"].(string)
		d, ok := m.docs[id]
		if !ok || d["_type"] != "product" {
			return json.RawMessage("null"), nil
		}
		return json.Marshal(m.project(d))
	}
	return nil, fmt.Errorf("mock: unsupported query %q", query)
}

// project renders a stored document the way the query projection does,
// dereferencing the image asset reference to {_id, url}.
func (m *mockStore) project(d map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range d {
		out[k] = v
	}
	if img, ok := d["image"].(map[string]interface{}); ok {
		if asset, ok := img["asset"].(map[string]interface{}); ok {
			if ref, ok := asset["_ref"].(string); ok {
				out["image"] = map[string]interface{}{"_id": ref, "url": m.assets[ref]}
			}
		}
	}
	return out
}

func (m *mockStore) Create(ctx context.Context, doc map[string]interface{}) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stored := map[string]interface{}{}
	for k, v := range doc {
		stored[k] = v
	}
	stored["_id"] = fmt.Sprintf("product-%d", m.nextID)
	stored["_createdAt"] = time.Now().UTC().Format(time.RFC3339)
	stored["_rev"] = "rev-1"
	m.docs[stored["_id"].(string)] = stored
	return json.Marshal(stored)
}

func (m *mockStore) Patch(id string) *store.Patch {
	return store.NewPatch(id, func(ctx context.Context, id string, set map[string]interface{}) (json.RawMessage, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		doc, ok := m.docs[id]
		if !ok {
			return nil, fmt.Errorf("patch %s: %w", id, store.ErrNotFound)
		}
		for k, v := range set {
			doc[k] = v
		}
		return json.Marshal(m.project(doc))
	})
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, store.ErrNotFound)
	}
	delete(m.docs, id)
	return nil
}

func (m *mockStore) UploadImage(ctx context.Context, r io.Reader) (*store.ImageAsset, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("image-%d", m.nextID)
	url := fmt.Sprintf("https://cdn.example/%s.png", id)
	m.assets[id] = url
	return &store.ImageAsset{ID: id, URL: url}, nil
}
