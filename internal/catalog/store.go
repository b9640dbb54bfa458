package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/imrishuroy/storefront-admin/internal/cache"
	"github.com/imrishuroy/storefront-admin/internal/store"
)

// Named queries. Filter semantics are part of the store's external protocol
// and must not drift: products are exactly the documents with _type "product".
const (
	queryListProducts = `*[_type == "product"]{_id, _type, title, price, description, status, "image": image.asset->{_id, url}, _createdAt, _updatedAt, _rev}`
	queryProductByID  = `*[_type == "product" && _id == $productId][0]{_id, _type, title, price, description, status, "image": image.asset->{_id, url}, _createdAt, _updatedAt, _rev}`
)

// Store encapsulates product queries and mutations against the document
// store, merging every accepted mutation into the client-side cache.
type Store struct {
	client store.API
	cache  cache.DocumentCache
}

// NewStore creates a new product Store.
func NewStore(client store.API, c cache.DocumentCache) *Store {
	return &Store{client: client, cache: c}
}

// CreateProductInput carries the caller-validated fields for a new product.
// Price must already be checked non-negative; no status or image is set.
type CreateProductInput struct {
	Title       string
	Price       float64
	Description string
}

// UpdateProductInput is a full or partial product field set. Nil fields are
// left untouched. A non-nil ImageData is uploaded first and the resulting
// asset reference joins the same atomic patch.
type UpdateProductInput struct {
	Title       *string
	Price       *float64
	Description *string
	Status      *string
	ImageData   io.Reader
}

// List fetches all products from the live host (list views must reflect
// just-written mutations) and re-primes the cache with the result.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	raw, err := s.client.Fetch(ctx, queryListProducts, nil, store.FetchOptions{ForceLive: true})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w: %v", ErrInvalidDocument, err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p, err := decodeProduct(doc)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, *p)
	}

	if err := s.cache.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush cache: %w", err)
	}
	for i := range products {
		s.putCached(ctx, &products[i])
	}
	return products, nil
}

// Get fetches one product by id. Returns (nil, nil) if not found. Cache hits
// are served without a network call; mutations keep the cache coherent.
func (s *Store) Get(ctx context.Context, id string) (*Product, error) {
	if doc, err := s.cache.Get(ctx, id); err == nil && doc != nil {
		var p Product
		if uerr := json.Unmarshal(doc, &p); uerr == nil {
			return &p, nil
		}
	}

	raw, err := s.client.Fetch(ctx, queryProductByID, map[string]interface{}{"productId": id}, store.FetchOptions{ForceLive: true})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	p, err := decodeProduct(raw)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	s.putCached(ctx, p)
	return p, nil
}

// Create persists a new product document. Status and image stay unset; the
// caller may patch them later.
func (s *Store) Create(ctx context.Context, in CreateProductInput) (*Product, error) {
	doc := map[string]interface{}{
		"_type":       "product",
		"title":       in.Title,
		"price":       in.Price,
		"description": in.Description,
	}

	raw, err := s.client.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	p, err := decodeProduct(raw)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.putCached(ctx, p)
	return p, nil
}

// Update applies a full or partial field set as one atomic patch and returns
// the merged document. When ImageData is present the binary is uploaded
// first and the patch carries the fresh asset reference.
func (s *Store) Update(ctx context.Context, id string, in UpdateProductInput) (*Product, error) {
	set := map[string]interface{}{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}

	if in.ImageData != nil {
		asset, err := s.client.UploadImage(ctx, in.ImageData)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		set["image"] = map[string]interface{}{
			"_type": "image",
			"asset": map[string]interface{}{
				"_type": "reference",
				"_ref":  asset.ID,
			},
		}
	}

	raw, err := s.client.Patch(id).Set(set).Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	p, err := decodeProduct(raw)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.putCached(ctx, p)
	return p, nil
}

// Delete hard-deletes the product document. No cascade: orders still
// referencing the id resolve that slot to null on their next fetch.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("evict cache: %w", err)
	}
	return nil
}

// putCached merges an accepted document into the cache. Cache write failures
// do not fail the operation the store already accepted.
func (s *Store) putCached(ctx context.Context, p *Product) {
	doc, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = s.cache.Put(ctx, p.ID, doc)
}
