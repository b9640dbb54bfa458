package store

import (
	"context"
	"encoding/json"
)

// CommitFunc applies staged field assignments to one document atomically.
// The concrete client supplies an HTTP-backed implementation; test fakes
// supply their own.
type CommitFunc func(ctx context.Context, id string, set map[string]interface{}) (json.RawMessage, error)

// Patch stages field assignments against a single document. Assignments
// accumulate via Set and are applied as one atomic update on Commit; nothing
// touches the store before Commit.
type Patch struct {
	id     string
	set    map[string]interface{}
	commit CommitFunc
}

// NewPatch returns a Patch bound to a document id and a commit strategy.
func NewPatch(id string, commit CommitFunc) *Patch {
	return &Patch{
		id:     id,
		set:    map[string]interface{}{},
		commit: commit,
	}
}

// Set stages field assignments. Later values for the same field win.
func (p *Patch) Set(fields map[string]interface{}) *Patch {
	for k, v := range fields {
		p.set[k] = v
	}
	return p
}

// Commit applies all staged assignments as a single atomic update and
// returns the merged document.
func (p *Patch) Commit(ctx context.Context) (json.RawMessage, error) {
	return p.commit(ctx, p.id, p.set)
}
