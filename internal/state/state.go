// Package state persists the dashboard's client-side state between runs:
// the active watchlist, the active page, and the theme. Values live in a
// small key-value table in the profile's SQLite file. Keys for per-user
// state are namespaced ("user_{id}_...") so profiles shared between users
// don't cross-contaminate; the theme key is deliberately not namespaced and
// outlives everything else.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"watchboard/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database inside dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, "state.sqlite"))
	if err != nil {
		return nil, err
	}
	// busy_timeout avoids "database is locked" flakiness when a CLI command
	// runs while the TUI is open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) set(ctx context.Context, k, v string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, k, v)
	return err
}

func (s *Store) get(ctx context.Context, k string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (s *Store) remove(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, k); err != nil {
			return err
		}
	}
	return nil
}

// AppState is the typed view of one user's dashboard state.
type AppState struct {
	store  *Store
	userID string
}

func NewAppState(store *Store, userID string) *AppState {
	if userID == "" {
		userID = "guest"
	}
	return &AppState{store: store, userID: userID}
}

func (a *AppState) scoped(key string) string {
	return fmt.Sprintf("user_%s_%s", a.userID, key)
}

// SetActiveWatchlist records which watchlist the data page is showing.
// Values are pass-through strings; no validation.
func (a *AppState) SetActiveWatchlist(ctx context.Context, id, name string) error {
	if err := a.store.set(ctx, a.scoped("activeWatchlistId"), id); err != nil {
		return err
	}
	return a.store.set(ctx, a.scoped("activeWatchlistName"), name)
}

func (a *AppState) ActiveWatchlist(ctx context.Context) (id, name string, err error) {
	if id, err = a.store.get(ctx, a.scoped("activeWatchlistId")); err != nil {
		return "", "", err
	}
	name, err = a.store.get(ctx, a.scoped("activeWatchlistName"))
	return id, name, err
}

// RemoveActiveWatchlist clears the pair, e.g. after the watchlist is deleted.
func (a *AppState) RemoveActiveWatchlist(ctx context.Context) error {
	return a.store.remove(ctx, a.scoped("activeWatchlistId"), a.scoped("activeWatchlistName"))
}

func (a *AppState) SetActivePage(ctx context.Context, page model.Page) error {
	return a.store.set(ctx, a.scoped("activePage"), string(page))
}

// ActivePage returns the persisted page, or "" when no prior session exists
// or the stored value is not one of the three known pages.
func (a *AppState) ActivePage(ctx context.Context) (model.Page, error) {
	v, err := a.store.get(ctx, a.scoped("activePage"))
	if err != nil {
		return "", err
	}
	return model.ParsePage(v), nil
}

// Theme is durable and shared across users of the profile, like the
// dashboard's localStorage theme key.
func (a *AppState) SetTheme(ctx context.Context, theme string) error {
	return a.store.set(ctx, "theme", theme)
}

func (a *AppState) Theme(ctx context.Context) (string, error) {
	return a.store.get(ctx, "theme")
}
