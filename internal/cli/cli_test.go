package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// runCmd executes the root command against a fake backend and returns the
// decoded JSON envelope from stdout.
func runCmd(t *testing.T, baseURL string, args ...string) (map[string]any, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--base-url", baseURL, "--cookie", "csrftoken=test"}, args...))
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var env map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, stdout.String())
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope with data key; got:\n%s", stdout.String())
	}
	return env, nil
}

func TestWatchlistsListCommand(t *testing.T) {
	t.Setenv("WATCHBOARD_PROFILE", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard/watchlist/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 3, "name": "tech", "last_modified": "2026-08-01 09:00:00"}]`))
	}))
	defer srv.Close()

	env, err := runCmd(t, srv.URL, "watchlists", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, ok := env["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %#v", env["data"])
	}
	first, _ := data[0].(map[string]any)
	if first["name"] != "tech" {
		t.Fatalf("first watchlist = %#v", first)
	}
}

func TestWatchlistsCreateCommand(t *testing.T) {
	t.Setenv("WATCHBOARD_PROFILE", t.TempDir())
	var gotCSRF string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/dashboard/watchlist/create/" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotCSRF = r.Header.Get("X-CSRFToken")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 9, "name": "energy"}`))
	}))
	defer srv.Close()

	env, err := runCmd(t, srv.URL, "watchlists", "create", "--name", "energy")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotCSRF != "test" {
		t.Fatalf("X-CSRFToken = %q", gotCSRF)
	}
	created, _ := env["data"].(map[string]any)
	if created["id"] != float64(9) || created["name"] != "energy" {
		t.Fatalf("created = %#v", created)
	}
}

func TestQuotesCommandResolvesName(t *testing.T) {
	t.Setenv("WATCHBOARD_PROFILE", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/dashboard/watchlist/":
			w.Write([]byte(`[{"id": 3, "name": "tech", "last_modified": ""}]`))
		case "/api/dashboard/watchlist/data/3/":
			w.Write([]byte(`{"quotes": [[42, {"ticker": "NVDA", "price": 900.5}]], "meta_data": {"length": 1, "last_modified": ""}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	env, err := runCmd(t, srv.URL, "quotes", "TECH")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, _ := env["data"].(map[string]any)
	quotes, _ := data["quotes"].([]any)
	if len(quotes) != 1 {
		t.Fatalf("quotes = %#v", data["quotes"])
	}
}

func TestQuotesCommandUnknownName(t *testing.T) {
	t.Setenv("WATCHBOARD_PROFILE", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := runCmd(t, srv.URL, "quotes", "nope"); err == nil {
		t.Fatalf("expected an error for an unknown watchlist")
	}
}

func TestStocksAddCommandRequiresWatchlistFlag(t *testing.T) {
	t.Setenv("WATCHBOARD_PROFILE", t.TempDir())
	if _, err := runCmd(t, "http://127.0.0.1:1", "stocks", "add", "NVDA"); err == nil {
		t.Fatalf("expected a missing-flag error")
	}
}
