package model

import (
	"encoding/json"
	"fmt"
)

// Watchlist is the server's projection of one named watchlist. It is
// re-fetched on every list-page load and never cached across loads.
type Watchlist struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LastModified string `json:"last_modified"`
}

// Quote is the latest snapshot for one ticker. Fields are pointers because
// the backend returns null for values it could not source.
type Quote struct {
	Ticker      string   `json:"ticker"`
	Price       *float64 `json:"price"`
	DailyReturn *float64 `json:"daily_return"`
	Bid         *float64 `json:"bid"`
	Ask         *float64 `json:"ask"`
	Volume      *float64 `json:"volume"`
}

// QuoteRow pairs a stock's row id with its quote. The backend encodes each
// row as a 2-element JSON array: [stockID, {quote...}].
type QuoteRow struct {
	StockID int64
	Quote   Quote
}

func (r *QuoteRow) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("quote row: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.StockID); err != nil {
		return fmt.Errorf("quote row id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Quote); err != nil {
		return fmt.Errorf("quote row fields: %w", err)
	}
	return nil
}

func (r QuoteRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.StockID, r.Quote})
}

// WatchlistMeta summarizes a watchlist for the data page's summary line.
type WatchlistMeta struct {
	Count        int    `json:"length"`
	LastModified string `json:"last_modified"`
}

// WatchlistData is the full data-page payload for one watchlist.
type WatchlistData struct {
	Rows []QuoteRow    `json:"quotes"`
	Meta WatchlistMeta `json:"meta_data"`
}

// Page identifies which of the three dashboard pages is active.
type Page string

const (
	PageData   Page = "dataPage"
	PageEdit   Page = "editWatchlist"
	PageCreate Page = "createWatchlist"
)

// ParsePage maps a stored page value back to a Page. Anything outside the
// three known values (including the empty string of a fresh session) yields
// "" so callers fall back to the default page.
func ParsePage(s string) Page {
	switch Page(s) {
	case PageData, PageEdit, PageCreate:
		return Page(s)
	}
	return ""
}
