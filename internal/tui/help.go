package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Watchboard

A terminal client for your watchlist dashboard.

## Pages

- **Data page** — quotes for one watchlist. Switch lists with ←/→.
- **All watchlists** (` + "`v`" + `) — every list with its last-modified time.
- **New watchlist** (` + "`n`" + `) — create a list; it opens right away.

## Actions

| Key | Action |
|-----|--------|
| ` + "`r`" + ` | rename the open watchlist inline |
| ` + "`a`" + ` | add a ticker |
| ` + "`enter`" + ` | actions for the selected stock row |
| ` + "`d`" + ` | delete (with confirmation) |
| ` + "`[` / `]`" + ` | navigation history back / forward |
| ` + "`t`" + ` | toggle light/dark theme |

The active watchlist and page survive restarts; the theme survives forever.
`

var (
	helpMu sync.Mutex
	// Cache rendered output by style+width: building a renderer probes
	// terminal capabilities, which is too slow to repeat every frame.
	helpRendered = map[string]string{}
)

func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}
	helpMu.Lock()
	defer helpMu.Unlock()

	style := helpStyle()
	key := fmt.Sprintf("%s:%d", style, width)
	if out, ok := helpRendered[key]; ok {
		return out
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block on terminal queries in some setups.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	out = strings.TrimRight(out, "\n")
	helpRendered[key] = out
	return out
}

func helpStyle() string {
	if darkThemeActive() {
		return "dark"
	}
	return "light"
}
