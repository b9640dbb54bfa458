package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Product statuses
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out_of_stock"
)

// ErrInvalidDocument indicates a store response that does not decode into a
// well-formed product. The query layer fails closed rather than letting
// partial fields reach the presentation layer.
var ErrInvalidDocument = errors.New("invalid product document")

// ImageRef is a product's image asset dereferenced to a renderable URL.
type ImageRef struct {
	ID  string `json:"_id"`
	URL string `json:"url"`
}

// Product is the typed shape of a product document. Status and Image are
// unset on freshly created products; callers patch them later.
type Product struct {
	ID          string    `json:"_id"`
	Type        string    `json:"_type"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Image       *ImageRef `json:"image,omitempty"`
	CreatedAt   string    `json:"_createdAt,omitempty"`
	UpdatedAt   string    `json:"_updatedAt,omitempty"`
	Rev         string    `json:"_rev,omitempty"`
}

// rawProduct mirrors the wire shape before validation. The image projection
// arrives as {"asset": {"_id", "url"}} or already flattened depending on the
// query; both are accepted.
type rawProduct struct {
	ID          string          `json:"_id"`
	Type        string          `json:"_type"`
	Title       string          `json:"title"`
	Price       *float64        `json:"price"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Image       json.RawMessage `json:"image"`
	CreatedAt   string          `json:"_createdAt"`
	UpdatedAt   string          `json:"_updatedAt"`
	Rev         string          `json:"_rev"`
}

// decodeProduct validates a raw document into a Product. Required: _id, and
// when present, _type must be "product" and price must be non-negative.
func decodeProduct(raw json.RawMessage) (*Product, error) {
	var rp rawProduct
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if rp.ID == "" {
		return nil, fmt.Errorf("%w: missing _id", ErrInvalidDocument)
	}
	if rp.Type != "" && rp.Type != "product" {
		return nil, fmt.Errorf("%w: %s has _type %q", ErrInvalidDocument, rp.ID, rp.Type)
	}
	p := Product{
		ID:          rp.ID,
		Type:        rp.Type,
		Title:       rp.Title,
		Description: rp.Description,
		Status:      rp.Status,
		CreatedAt:   rp.CreatedAt,
		UpdatedAt:   rp.UpdatedAt,
		Rev:         rp.Rev,
	}
	if rp.Price != nil {
		if *rp.Price < 0 {
			return nil, fmt.Errorf("%w: %s has negative price", ErrInvalidDocument, rp.ID)
		}
		p.Price = *rp.Price
	}
	if img, err := decodeImage(rp.Image); err != nil {
		return nil, fmt.Errorf("%w: %s image: %v", ErrInvalidDocument, rp.ID, err)
	} else {
		p.Image = img
	}
	return &p, nil
}

// decodeImage accepts the dereferenced {"asset": {"_id","url"}} shape, the
// stored {"asset": {"_ref"}} reference shape, or a flat {"_id","url"}.
// A null/absent image yields nil, not an error.
func decodeImage(raw json.RawMessage) (*ImageRef, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var nested struct {
		Asset *struct {
			ID  string `json:"_id"`
			Ref string `json:"_ref"`
			URL string `json:"url"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Asset != nil {
		id := nested.Asset.ID
		if id == "" {
			id = nested.Asset.Ref
		}
		if id != "" || nested.Asset.URL != "" {
			return &ImageRef{ID: id, URL: nested.Asset.URL}, nil
		}
	}
	var flat ImageRef
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	if flat.URL == "" && flat.ID == "" {
		return nil, nil
	}
	return &flat, nil
}
