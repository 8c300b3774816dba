// Package upstream is the HTTP client for the restaurant platform's
// collection API. Collections are fetched whole and mutations are
// forwarded as-is; the upstream server stays the authority on acceptance.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/angkringan-pos/admin-api/internal/model"
)

// ErrNotFound is returned when the upstream reports 404 for a record.
var ErrNotFound = errors.New("record not found")

// StatusError carries a non-2xx upstream response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// Client talks to one upstream API base URL. The zero http.Client is
// replaced with http.DefaultClient; tests inject their own.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/api/users", u, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/api/users/"+id, u, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

// --- Menus ---

func (c *Client) ListMenus(ctx context.Context) ([]model.Menu, error) {
	var out []model.Menu
	err := c.do(ctx, http.MethodGet, "/api/menus", nil, &out)
	return out, err
}

func (c *Client) CreateMenu(ctx context.Context, m model.Menu) (model.Menu, error) {
	var out model.Menu
	err := c.do(ctx, http.MethodPost, "/api/menus", m, &out)
	return out, err
}

func (c *Client) UpdateMenu(ctx context.Context, id string, m model.Menu) (model.Menu, error) {
	var out model.Menu
	err := c.do(ctx, http.MethodPut, "/api/menus/"+id, m, &out)
	return out, err
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menus/"+id, nil, nil)
}

// --- Promos ---

func (c *Client) ListPromos(ctx context.Context) ([]model.Promo, error) {
	var out []model.Promo
	err := c.do(ctx, http.MethodGet, "/api/promos", nil, &out)
	return out, err
}

func (c *Client) CreatePromo(ctx context.Context, p model.Promo) (model.Promo, error) {
	var out model.Promo
	err := c.do(ctx, http.MethodPost, "/api/promos", p, &out)
	return out, err
}

func (c *Client) UpdatePromo(ctx context.Context, id string, p model.Promo) (model.Promo, error) {
	var out model.Promo
	err := c.do(ctx, http.MethodPut, "/api/promos/"+id, p, &out)
	return out, err
}

func (c *Client) DeletePromo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/promos/"+id, nil, nil)
}

// --- Reviews ---

func (c *Client) ListReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	err := c.do(ctx, http.MethodGet, "/api/reviews", nil, &out)
	return out, err
}

func (c *Client) CreateReview(ctx context.Context, r model.Review) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPost, "/api/reviews", r, &out)
	return out, err
}

func (c *Client) UpdateReview(ctx context.Context, id string, r model.Review) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPut, "/api/reviews/"+id, r, &out)
	return out, err
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+id, nil, nil)
}

// --- Transactions ---

func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &out)
	return out, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, t model.Transaction) (model.Transaction, error) {
	var out model.Transaction
	err := c.do(ctx, http.MethodPut, "/api/transactions/"+id, t, &out)
	return out, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, nil)
}

// --- Logs ---

func (c *Client) ListLogs(ctx context.Context) ([]model.LogEntry, error) {
	var out []model.LogEntry
	err := c.do(ctx, http.MethodGet, "/api/logs", nil, &out)
	return out, err
}

// do issues one round trip. body is JSON-encoded when non-nil; out is
// JSON-decoded when non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %w", method, path, &StatusError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		})
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
