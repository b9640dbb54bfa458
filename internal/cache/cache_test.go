package cache

import (
	"context"
	"testing"
)

func TestMemory_PutGetDeleteFlush(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if doc, err := c.Get(ctx, "p1"); err != nil || doc != nil {
		t.Fatalf("expected miss, got doc=%v err=%v", doc, err)
	}

	if err := c.Put(ctx, "p1", []byte(`{"_id":"p1"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	doc, err := c.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(doc) != `{"_id":"p1"}` {
		t.Fatalf("unexpected doc %s", doc)
	}

	if err := c.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if doc, _ := c.Get(ctx, "p1"); doc != nil {
		t.Fatalf("expected miss after delete, got %s", doc)
	}

	c.Put(ctx, "p2", []byte(`{}`))
	c.Put(ctx, "p3", []byte(`{}`))
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if doc, _ := c.Get(ctx, "p2"); doc != nil {
		t.Fatal("expected empty cache after flush")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	c.Put(ctx, "p1", []byte("abc"))

	doc, _ := c.Get(ctx, "p1")
	doc[0] = 'x'

	again, _ := c.Get(ctx, "p1")
	if string(again) != "abc" {
		t.Fatalf("cached bytes were mutated through the returned slice: %s", again)
	}
}
