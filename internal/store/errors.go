package store

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a singleton lookup or delete addressed a document id
// that does not exist. Callers treat it as a render-not-found signal, not a
// failure to propagate.
var ErrNotFound = errors.New("document not found")

// APIError is a non-2xx response from the document store. The store does not
// retry; the caller sees the rejection verbatim.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api error (status %d): %s", e.StatusCode, e.Description)
}
