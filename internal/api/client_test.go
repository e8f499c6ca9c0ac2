package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testCookie = "sessionid=abc123; csrftoken=tok-55"

func TestCookieValue(t *testing.T) {
	if got := CookieValue(testCookie, "csrftoken"); got != "tok-55" {
		t.Fatalf("csrftoken = %q; want tok-55", got)
	}
	if got := CookieValue(testCookie, "sessionid"); got != "abc123" {
		t.Fatalf("sessionid = %q", got)
	}
	if got := CookieValue(testCookie, "missing"); got != "" {
		t.Fatalf("missing cookie = %q; want empty", got)
	}
	if got := CookieValue("  spaced = x ;other=y", "other"); got != "y" {
		t.Fatalf("other = %q; want y", got)
	}
}

type recorded struct {
	method string
	path   string
	csrf   string
	cookie string
	body   []byte
}

func newTestServer(t *testing.T, status int, respBody string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.csrf = r.Header.Get("X-CSRFToken")
		rec.cookie = r.Header.Get("Cookie")
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestWatchlistsSendsCookieNoCSRF(t *testing.T) {
	srv, rec := newTestServer(t, 200, `[{"id": 1, "name": "tech", "last_modified": "2026-08-01 09:00:00"}]`)
	c := NewClient(srv.URL, testCookie)

	lists, err := c.Watchlists(context.Background())
	if err != nil {
		t.Fatalf("Watchlists: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "tech" || lists[0].ID != 1 {
		t.Fatalf("lists = %+v", lists)
	}
	if rec.path != "/api/dashboard/watchlist/" {
		t.Fatalf("path = %q", rec.path)
	}
	if rec.cookie != testCookie {
		t.Fatalf("cookie header = %q", rec.cookie)
	}
	// GETs must not carry the anti-forgery header.
	if rec.csrf != "" {
		t.Fatalf("GET sent X-CSRFToken = %q", rec.csrf)
	}
}

func TestRenameSendsCSRFAndBody(t *testing.T) {
	srv, rec := newTestServer(t, 200, `{"message": "Watchlist renamed successfully"}`)
	c := NewClient(srv.URL, testCookie)

	if err := c.RenameWatchlist(context.Background(), 7, "growth"); err != nil {
		t.Fatalf("RenameWatchlist: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/api/dashboard/watchlist/rename/7/" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	if rec.csrf != "tok-55" {
		t.Fatalf("X-CSRFToken = %q; want tok-55", rec.csrf)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.body, &body); err != nil || body["name"] != "growth" {
		t.Fatalf("body = %s (err %v)", rec.body, err)
	}
}

func TestAddStockUppercasesTicker(t *testing.T) {
	srv, rec := newTestServer(t, 200, `{"message": "NVDA added successfully.", "loading": "NVDA is being added..."}`)
	c := NewClient(srv.URL, testCookie)

	res, err := c.AddStock(context.Background(), " nvda ", 3)
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if res.Message == "" || res.Loading == "" {
		t.Fatalf("result = %+v", res)
	}
	var body struct {
		Ticker      string `json:"ticker"`
		WatchlistID int64  `json:"watchlist_id"`
	}
	if err := json.Unmarshal(rec.body, &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body.Ticker != "NVDA" {
		t.Fatalf("ticker sent = %q; want NVDA", body.Ticker)
	}
	if body.WatchlistID != 3 {
		t.Fatalf("watchlist_id = %d", body.WatchlistID)
	}
}

func TestRemoveStockPath(t *testing.T) {
	srv, rec := newTestServer(t, 200, `{"message": "Stock NVDA removed successfully."}`)
	c := NewClient(srv.URL, testCookie)

	if err := c.RemoveStock(context.Background(), 42, 3); err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/api/dashboard/watchlist/remove/stock/42/3/" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
}

func TestErrorBodySurfacesAsAPIError(t *testing.T) {
	srv, _ := newTestServer(t, 400, `{"error": "Watchlist name already exists"}`)
	c := NewClient(srv.URL, testCookie)

	err := c.RenameWatchlist(context.Background(), 7, "dupe")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v; want *APIError", err)
	}
	if apiErr.Status != 400 || apiErr.Message != "Watchlist name already exists" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if apiErr.Error() != "Watchlist name already exists" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}

func TestErrorWithoutBodyStillTyped(t *testing.T) {
	srv, _ := newTestServer(t, 500, ``)
	c := NewClient(srv.URL, testCookie)

	err := c.DeleteWatchlist(context.Background(), 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v; want *APIError", err)
	}
	if apiErr.Error() != "api: HTTP 500" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}
