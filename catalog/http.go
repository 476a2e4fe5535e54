package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPCatalog resolves products from a remote catalog service exposing
// GET {base}/api/products/{id}.
type HTTPCatalog struct {
	base   string
	client *http.Client
}

// NewHTTP creates an HTTPCatalog for the given base URL. The timeout is
// an upper bound per lookup; callers typically bound each call tighter
// via ctx.
func NewHTTP(base string, timeout time.Duration) *HTTPCatalog {
	return &HTTPCatalog{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Resolve fetches the product from the catalog service.
func (c *HTTPCatalog) Resolve(ctx context.Context, id string) (*Product, error) {
	endpoint := c.base + "/api/products/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUnknown
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch product %s: unexpected status %d", id, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read product %s: %w", id, err)
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}
