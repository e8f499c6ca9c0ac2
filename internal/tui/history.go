package tui

import "watchboard/internal/model"

// Navigation history. Each page switch the user makes is pushed as an entry;
// back/forward re-dispatch the same navigation action through the normal
// loader path, the way the web dashboard replays a click on popstate. No
// reconciliation happens if a referenced watchlist has since been deleted:
// the loader's fetch reports whatever the server says.

type navEntry struct {
	page model.Page
	id   int64
	name string
}

type navStack struct {
	entries []navEntry
	// pos indexes the current entry; -1 when nothing has been visited.
	pos int
}

func newNavStack() navStack {
	return navStack{pos: -1}
}

// push records a user-initiated navigation, discarding any forward entries.
func (n *navStack) push(e navEntry) {
	// Re-pushing the current entry (e.g. clicking the active watchlist again)
	// would make back a no-op step; skip it.
	if n.pos >= 0 && n.entries[n.pos] == e {
		return
	}
	n.entries = append(n.entries[:n.pos+1], e)
	n.pos = len(n.entries) - 1
}

func (n *navStack) back() (navEntry, bool) {
	if n.pos <= 0 {
		return navEntry{}, false
	}
	n.pos--
	return n.entries[n.pos], true
}

func (n *navStack) forward() (navEntry, bool) {
	if n.pos < 0 || n.pos >= len(n.entries)-1 {
		return navEntry{}, false
	}
	n.pos++
	return n.entries[n.pos], true
}
