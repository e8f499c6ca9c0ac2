// Package api is a thin typed client for the dashboard's watchlist REST API.
//
// Mutating requests carry the CSRF token recovered from the session cookie in
// an X-CSRFToken header, mirroring what the web dashboard sends. There is no
// retry or cancellation logic beyond the client-wide timeout: a failed call
// returns an error and the caller decides whether to try again.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"watchboard/internal/model"
)

const csrfCookieName = "csrftoken"

// APIError is a non-2xx response with the backend's {"error": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("api: HTTP %d", e.Status)
	}
	return e.Message
}

// AddStockResult carries the backend's two-phase feedback for an add:
// Loading is shown while the table refreshes, Message afterwards.
type AddStockResult struct {
	Message string `json:"message"`
	Loading string `json:"loading"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	csrf       string
}

// NewClient builds a client for the dashboard at baseURL. cookie is the raw
// Cookie header of an authenticated browser session; the CSRF token is read
// out of it.
func NewClient(baseURL, cookie string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookie:     cookie,
		csrf:       CookieValue(cookie, csrfCookieName),
	}
}

// Watchlists returns all of the user's watchlists.
func (c *Client) Watchlists(ctx context.Context) ([]model.Watchlist, error) {
	var out []model.Watchlist
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/watchlist/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchlistData returns the quote rows and metadata for one watchlist.
func (c *Client) WatchlistData(ctx context.Context, watchlistID int64) (model.WatchlistData, error) {
	var out model.WatchlistData
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/dashboard/watchlist/data/%d/", watchlistID), nil, &out)
	return out, err
}

// CreateWatchlist creates a named watchlist and returns its id/name.
func (c *Client) CreateWatchlist(ctx context.Context, name string) (model.Watchlist, error) {
	var out model.Watchlist
	err := c.do(ctx, http.MethodPost, "/api/dashboard/watchlist/create/", map[string]string{"name": name}, &out)
	return out, err
}

// DeleteWatchlist removes a watchlist and everything in it.
func (c *Client) DeleteWatchlist(ctx context.Context, watchlistID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/dashboard/watchlist/delete/%d/", watchlistID), nil, nil)
}

// RenameWatchlist renames a watchlist. The backend rejects empty and
// duplicate names with an APIError.
func (c *Client) RenameWatchlist(ctx context.Context, watchlistID int64, name string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/dashboard/watchlist/rename/%d/", watchlistID), map[string]string{"name": name}, nil)
}

// AddStock adds a ticker to a watchlist. The ticker is uppercased before it
// is sent, matching what the backend stores.
func (c *Client) AddStock(ctx context.Context, ticker string, watchlistID int64) (AddStockResult, error) {
	var out AddStockResult
	body := map[string]any{
		"ticker":       strings.ToUpper(strings.TrimSpace(ticker)),
		"watchlist_id": watchlistID,
	}
	err := c.do(ctx, http.MethodPost, "/api/dashboard/watchlist/add/stock/", body, &out)
	return out, err
}

// RemoveStock removes one stock row from a watchlist.
func (c *Client) RemoveStock(ctx context.Context, stockID, watchlistID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/dashboard/watchlist/remove/stock/%d/%d/", stockID, watchlistID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	if method != http.MethodGet {
		req.Header.Set("X-CSRFToken", c.csrf)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var wire struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &wire) == nil {
			apiErr.Message = wire.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: parsing response: %w", method, path, err)
	}
	return nil
}
