package store

import (
	"context"
	"encoding/json"
	"io"
)

// API is the surface of the document store that entity stores depend on.
// The concrete *Client implements it; tests substitute in-memory fakes.
type API interface {
	// Fetch executes a read-only query with named $param substitution and
	// returns the raw query result. Idempotent and side-effect-free.
	Fetch(ctx context.Context, query string, params map[string]interface{}, opts FetchOptions) (json.RawMessage, error)

	// Create persists a new document. The store assigns _id, _createdAt and
	// the revision token. Returns the created document.
	Create(ctx context.Context, doc map[string]interface{}) (json.RawMessage, error)

	// Patch starts a staged update against a single document. Staged field
	// assignments are applied atomically on Commit.
	Patch(id string) *Patch

	// Delete removes one document. Returns ErrNotFound if the id does not
	// exist. Deletes never cascade; dangling references resolve to null on
	// re-fetch, which callers must tolerate.
	Delete(ctx context.Context, id string) error

	// UploadImage uploads binary image data and returns an asset reference
	// usable inside a document's image field.
	UploadImage(ctx context.Context, r io.Reader) (*ImageAsset, error)
}

// FetchOptions controls per-query behavior.
type FetchOptions struct {
	// ForceLive bypasses the CDN response cache. Required for every list
	// view that must reflect just-written mutations.
	ForceLive bool
}

// ImageAsset is the reference returned by an image upload.
type ImageAsset struct {
	ID  string `json:"_id"`
	URL string `json:"url"`
}
