// Package catalog talks to the external trading-card catalog API. The
// catalog is read-only; card payloads are opaque bags of fields owned by the
// upstream and carried through untouched.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"binder.org/internal/obs"
)

// ErrUnavailable indicates the upstream catalog failed or timed out.
var ErrUnavailable = errors.New("catalog: upstream unavailable")

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 250
)

// Card is a catalog card payload. The field set belongs to the upstream API.
type Card map[string]any

// ID returns the card identifier, or "" when the payload has none.
func (c Card) ID() string {
	id, _ := c["id"].(string)
	return id
}

// Client fetches cards from the catalog API over HTTP. Every call carries a
// bounded deadline; an unresponsive upstream surfaces as ErrUnavailable
// instead of stalling the request.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

// ClientOption configures Client behavior.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPageSize overrides the page size used when walking a set.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient constructs a Client. apiKey may be empty; the upstream then
// applies its anonymous rate limits.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cardsPage struct {
	Data       []Card `json:"data"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Count      int    `json:"count"`
	TotalCount int    `json:"totalCount"`
}

// SetCards returns every card of the named set, in catalog order. The
// upstream pages its listing; pages are walked until the set is exhausted.
func (c *Client) SetCards(ctx context.Context, setName string) ([]Card, error) {
	var cards []Card
	for page := 1; ; page++ {
		params := url.Values{
			"q":        []string{fmt.Sprintf("set.name:%q", setName)},
			"page":     []string{strconv.Itoa(page)},
			"pageSize": []string{strconv.Itoa(c.pageSize)},
		}
		var payload cardsPage
		if err := c.getJSON(ctx, "/cards", params, &payload); err != nil {
			return nil, err
		}
		cards = append(cards, payload.Data...)
		if len(payload.Data) < c.pageSize {
			return cards, nil
		}
		if payload.TotalCount > 0 && len(cards) >= payload.TotalCount {
			return cards, nil
		}
	}
}

// Card fetches a single card by identifier.
func (c *Client) Card(ctx context.Context, id string) (Card, error) {
	var payload struct {
		Data Card `json:"data"`
	}
	if err := c.getJSON(ctx, "/cards/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.ObserveCatalogRequest(path, 0, time.Since(start))
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()
	obs.ObserveCatalogRequest(path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUnavailable, path, err)
	}
	return nil
}
