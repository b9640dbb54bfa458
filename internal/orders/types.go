package orders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Display statuses the dashboard knows how to color. Order status is
// free-form in the store; anything else renders gray.
const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
)

// ErrInvalidDocument indicates a store response that does not decode into a
// well-formed order. The query layer fails closed.
var ErrInvalidDocument = errors.New("invalid order document")

// Details is the caller-supplied checkout sub-record. Nothing here is
// validated by this layer.
type Details struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// StatusList tolerates both shapes the store holds: a single status string
// and a list of status strings. It always marshals back as a list.
type StatusList []string

func (s *StatusList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = nil
		return nil
	}
	if b[0] == '"' {
		var single string
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}
		*s = StatusList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// Primary returns the first status, or "" when none is set.
func (s StatusList) Primary() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// OrderProduct is one entry of an order's sparse product list. The store
// holds either a bare product id or an embedded line item; deleted products
// leave null slots, which decode to nil pointers in the slice.
type OrderProduct struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
}

func (p *OrderProduct) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*p = OrderProduct{ID: id}
		return nil
	}
	type alias OrderProduct
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = OrderProduct(a)
	return nil
}

// Order is the typed shape of an order document. Orders are created by the
// checkout flow, outside this service; the dashboard reads them and patches
// status only. Total may be absent in the store, hence the pointer.
type Order struct {
	ID        string          `json:"_id"`
	Type      string          `json:"_type"`
	Details   Details         `json:"details"`
	User      string          `json:"user"`
	Products  []*OrderProduct `json:"products"`
	Status    StatusList      `json:"status"`
	Total     *float64        `json:"total,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	CreatedAt time.Time       `json:"_createdAt,omitempty"`
	UpdatedAt time.Time       `json:"_updatedAt,omitempty"`
	Rev       string          `json:"_rev,omitempty"`
}

// decodeOrder validates a raw document into an Order. Required: _id, and
// when present, _type must be "order".
func decodeOrder(raw json.RawMessage) (*Order, error) {
	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if o.ID == "" {
		return nil, fmt.Errorf("%w: missing _id", ErrInvalidDocument)
	}
	if o.Type != "" && o.Type != "order" {
		return nil, fmt.Errorf("%w: %s has _type %q", ErrInvalidDocument, o.ID, o.Type)
	}
	if o.Total != nil && *o.Total < 0 {
		return nil, fmt.Errorf("%w: %s has negative total", ErrInvalidDocument, o.ID)
	}
	return &o, nil
}
