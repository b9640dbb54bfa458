package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imrishuroy/storefront-admin/internal/cache"
	"github.com/imrishuroy/storefront-admin/internal/store"
)

// Named queries. Filter semantics are part of the store's external protocol.
//
// queryRecentOrders sorts on createdAt, which is not a field the order schema
// carries (documents have _createdAt). The clause is preserved verbatim from
// the dashboard it replaces; in practice the store returns its default order.
// Do not "fix" the field name without confirming intended behavior.
const (
	queryListOrders = `*[_type == "order"]{..., "slug": details.firstName + "-" + details.lastName + "-" + _id} | order(_createdAt desc)`

	queryRecentOrders = `*[_type == "order"] | order(createdAt desc)`

	queryOrderByID = `*[_type == "order" && _id == $slug][0]`
)

// Store encapsulates order reads and the status patch against the document
// store. Orders are otherwise read-only from the dashboard's perspective.
type Store struct {
	client store.API
	cache  cache.DocumentCache
}

// NewStore creates a new orders Store.
func NewStore(client store.API, c cache.DocumentCache) *Store {
	return &Store{client: client, cache: c}
}

// List fetches all orders for the customer list view, each annotated with the
// derived slug firstName-lastName-_id, newest first.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	return s.list(ctx, queryListOrders)
}

// ListRecent fetches all orders for the dashboard view.
func (s *Store) ListRecent(ctx context.Context) ([]Order, error) {
	return s.list(ctx, queryRecentOrders)
}

func (s *Store) list(ctx context.Context, query string) ([]Order, error) {
	raw, err := s.client.Fetch(ctx, query, nil, store.FetchOptions{ForceLive: true})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w: %v", ErrInvalidDocument, err)
	}

	orders := make([]Order, 0, len(docs))
	for _, doc := range docs {
		o, err := decodeOrder(doc)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

// Get fetches one order by id. Returns (nil, nil) if not found. The dashboard
// also uses this as its "customer detail": a customer is the order that names
// them (order-as-customer-proxy, a deliberate carry-over).
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	if doc, err := s.cache.Get(ctx, id); err == nil && doc != nil {
		var o Order
		if uerr := json.Unmarshal(doc, &o); uerr == nil {
			return &o, nil
		}
	}

	raw, err := s.client.Fetch(ctx, queryOrderByID, map[string]interface{}{"slug": id}, store.FetchOptions{ForceLive: true})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	o, err := decodeOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	s.putCached(ctx, o)
	return o, nil
}

// UpdateStatus patches the order's status as one atomic single-document
// update and returns the merged document. No transition graph is enforced;
// the store holds whatever the dashboard sets.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	raw, err := s.client.Patch(id).Set(map[string]interface{}{"status": status}).Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	o, err := decodeOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	s.putCached(ctx, o)
	return o, nil
}

func (s *Store) putCached(ctx context.Context, o *Order) {
	doc, err := json.Marshal(o)
	if err != nil {
		return
	}
	_ = s.cache.Put(ctx, o.ID, doc)
}
