package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is the process-wide handle to the hosted document store. It speaks
// the store's HTTP content API: GROQ-dialect queries on the query endpoint,
// staged mutations on the mutate endpoint, binary uploads on the asset
// endpoint. Operations carry no retry; a rejection is the operation's failure.
type Client struct {
	cfg        Config
	httpClient *http.Client
	liveURL    string // authoritative host, bypasses the response cache
	cdnURL     string // cached host, cheaper reads that may lag writes
}

// NewClient builds a Client from cfg. It performs no network I/O.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" && cfg.EndpointOverride == "" {
		return nil, fmt.Errorf("store: project id or endpoint override required")
	}

	live := fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	cdn := fmt.Sprintf("https://%s.apicdn.sanity.io", cfg.ProjectID)
	if cfg.EndpointOverride != "" {
		live = cfg.EndpointOverride
		cdn = cfg.EndpointOverride
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		liveURL:    live,
		cdnURL:     cdn,
	}, nil
}

// queryResponse is the envelope of the query endpoint.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// mutateResponse is the envelope of the mutate endpoint with
// returnDocuments=true.
type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string          `json:"id"`
		Operation string          `json:"operation"`
		Document  json.RawMessage `json:"document"`
	} `json:"results"`
}

// errorResponse is the store's error envelope.
type errorResponse struct {
	Error struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// Fetch executes a read-only query. Parameter values are JSON-encoded and
// passed as $-prefixed query string entries, matching the store's named
// parameter substitution (e.g. $slug in the query text).
func (c *Client) Fetch(ctx context.Context, query string, params map[string]interface{}, opts FetchOptions) (json.RawMessage, error) {
	host := c.cdnURL
	if opts.ForceLive {
		host = c.liveURL
	}

	vals := url.Values{}
	vals.Set("query", query)
	for k, v := range params {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode param %q: %w", k, err)
		}
		vals.Set("$"+k, string(enc))
	}

	endpoint := fmt.Sprintf("%s/%s/data/query/%s?%s", host, c.cfg.APIVersion, c.cfg.Dataset, vals.Encode())

	var out queryResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Create persists a new document via a single create mutation and returns the
// stored document with its assigned _id and timestamps.
func (c *Client) Create(ctx context.Context, doc map[string]interface{}) (json.RawMessage, error) {
	res, err := c.mutate(ctx, []map[string]interface{}{{"create": doc}})
	if err != nil {
		return nil, err
	}
	if len(res.Results) == 0 {
		return nil, fmt.Errorf("create: store returned no result document")
	}
	return res.Results[0].Document, nil
}

// Patch starts a staged single-document update. Fields staged via Set are
// applied as one atomic mutation on Commit.
func (c *Client) Patch(id string) *Patch {
	return NewPatch(id, func(ctx context.Context, id string, set map[string]interface{}) (json.RawMessage, error) {
		res, err := c.mutate(ctx, []map[string]interface{}{
			{"patch": map[string]interface{}{"id": id, "set": set}},
		})
		if err != nil {
			return nil, err
		}
		if len(res.Results) == 0 {
			return nil, fmt.Errorf("patch %s: %w", id, ErrNotFound)
		}
		return res.Results[0].Document, nil
	})
}

// Delete removes one document. ErrNotFound when the id does not exist.
func (c *Client) Delete(ctx context.Context, id string) error {
	res, err := c.mutate(ctx, []map[string]interface{}{
		{"delete": map[string]interface{}{"id": id}},
	})
	if err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// UploadImage streams binary image data to the asset endpoint and returns the
// asset reference to embed in a document's image field.
func (c *Client) UploadImage(ctx context.Context, r io.Reader) (*ImageAsset, error) {
	endpoint := fmt.Sprintf("%s/%s/assets/images/%s", c.liveURL, c.cfg.APIVersion, c.cfg.Dataset)

	var out struct {
		Document ImageAsset `json:"document"`
	}
	if err := c.do(ctx, http.MethodPost, endpoint, r, "application/octet-stream", &out); err != nil {
		return nil, err
	}
	if out.Document.ID == "" {
		return nil, fmt.Errorf("upload image: store returned no asset document")
	}
	return &out.Document, nil
}

// mutate posts a mutation batch with returnDocuments so callers get the
// resulting document back.
func (c *Client) mutate(ctx context.Context, mutations []map[string]interface{}) (*mutateResponse, error) {
	body, err := json.Marshal(map[string]interface{}{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("marshal mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/data/mutate/%s?returnDocuments=true", c.liveURL, c.cfg.APIVersion, c.cfg.Dataset)

	var out mutateResponse
	if err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		desc := ""
		if derr := json.NewDecoder(resp.Body).Decode(&er); derr == nil {
			desc = er.Error.Description
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", desc, ErrNotFound)
		}
		return &APIError{StatusCode: resp.StatusCode, Description: desc}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
