package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		Dataset:          "production",
		APIVersion:       "v2024-01-01",
		Token:            "test-token",
		EndpointOverride: srv.URL,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestFetch_QueryAndParams(t *testing.T) {
	var gotPath, gotQuery, gotParam, gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotParam = r.URL.Query().Get("$slug")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"result": {"_id": "order-1", "_type": "order"}}`))
	})

	raw, err := c.Fetch(context.Background(), `*[_type == "order" && _id == $slug][0]`, map[string]interface{}{"slug": "order-1"}, FetchOptions{ForceLive: true})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/v2024-01-01/data/query/production" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != `*[_type == "order" && _id == $slug][0]` {
		t.Fatalf("query not preserved verbatim, got %q", gotQuery)
	}
	// param values are JSON-encoded
	if gotParam != `"order-1"` {
		t.Fatalf("expected JSON-encoded param, got %q", gotParam)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("missing bearer token, got %q", gotAuth)
	}

	var doc map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if doc["_id"] != "order-1" {
		t.Fatalf("unexpected result %v", doc)
	}
}

func TestCreate_MutationBody(t *testing.T) {
	var gotBody map[string]interface{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/data/mutate/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("returnDocuments") != "true" {
			t.Errorf("returnDocuments not requested")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"results":[{"id":"product-1","operation":"create","document":{"_id":"product-1","_type":"product","title":"Mug","price":9.99}}]}`))
	})

	doc, err := c.Create(context.Background(), map[string]interface{}{
		"_type": "product",
		"title": "Mug",
		"price": 9.99,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	muts := gotBody["mutations"].([]interface{})
	if len(muts) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(muts))
	}
	created := muts[0].(map[string]interface{})["create"].(map[string]interface{})
	if created["title"] != "Mug" {
		t.Fatalf("create mutation missing fields: %v", created)
	}

	var p map[string]interface{}
	if err := json.Unmarshal(doc, &p); err != nil {
		t.Fatalf("unmarshal created doc: %v", err)
	}
	if p["_id"] != "product-1" {
		t.Fatalf("expected store-assigned id, got %v", p["_id"])
	}
}

func TestPatch_StagesFieldsAndCommitsOnce(t *testing.T) {
	calls := 0
	var gotBody map[string]interface{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"results":[{"id":"product-1","operation":"update","document":{"_id":"product-1","_type":"product","title":"Mug","status":"out_of_stock"}}]}`))
	})

	p := c.Patch("product-1").
		Set(map[string]interface{}{"status": "active"}).
		Set(map[string]interface{}{"status": "out_of_stock"})

	if calls != 0 {
		t.Fatalf("staging must not touch the store, saw %d calls", calls)
	}

	doc, err := p.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one atomic commit call, got %d", calls)
	}

	patch := gotBody["mutations"].([]interface{})[0].(map[string]interface{})["patch"].(map[string]interface{})
	if patch["id"] != "product-1" {
		t.Fatalf("patch targets wrong id: %v", patch["id"])
	}
	set := patch["set"].(map[string]interface{})
	if set["status"] != "out_of_stock" {
		t.Fatalf("later staged value must win, got %v", set["status"])
	}
	if doc == nil {
		t.Fatalf("expected merged document")
	}
}

func TestDelete_MissingDocument(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// store acknowledges the batch but deleted nothing
		w.Write([]byte(`{"results":[]}`))
	})

	err := c.Delete(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUploadImage(t *testing.T) {
	var gotBody []byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/assets/images/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"document":{"_id":"image-abc","url":"https://cdn.example/image-abc.png"}}`))
	})

	asset, err := c.UploadImage(context.Background(), strings.NewReader("binary-image-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if string(gotBody) != "binary-image-bytes" {
		t.Fatalf("binary payload not forwarded, got %q", gotBody)
	}
	if asset.ID != "image-abc" || asset.URL == "" {
		t.Fatalf("unexpected asset %+v", asset)
	}
}

func TestDo_APIErrorSurfacesVerbatim(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"type":"forbidden","description":"token lacks write scope"}}`))
	})

	_, err := c.Create(context.Background(), map[string]interface{}{"_type": "product"})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("status not preserved: %d", apiErr.StatusCode)
	}
	if apiErr.Description != "token lacks write scope" {
		t.Fatalf("description not preserved: %q", apiErr.Description)
	}
}
