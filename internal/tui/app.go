// Package tui is the interactive watchlist dashboard: three pages (quotes,
// watchlist list, create) with modal overlays, navigation history and a
// persisted light/dark theme, all driven by the backend REST API.
package tui

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"watchboard/internal/api"
	"watchboard/internal/format"
	"watchboard/internal/model"
	"watchboard/internal/state"
)

type appModel struct {
	client *api.Client
	app    *state.AppState
	log    *slog.Logger

	width  int
	height int

	// Sidebar data: the user's watchlists, re-fetched on boot and after
	// mutations that change the set.
	watchlists []model.Watchlist

	page       model.Page
	activeID   int64
	activeName string
	data       model.WatchlistData

	quoteTable table.Model
	listTable  table.Model

	loading   bool
	status    string
	statusErr bool

	modal        modalKind
	modalStockID int64
	modalTicker  string
	modalAnchor  int
	confirmFocus confirmModalFocus
	// confirmTarget is the watchlist the confirm-delete modal refers to. On
	// the data page it is the active watchlist; on the edit page it is the
	// selected row.
	confirmTarget model.Watchlist

	addInput       textinput.Model
	addFeedback    string
	addFeedbackErr bool
	// pendingAddMessage holds the success message to show once the table
	// refresh that follows an add has landed.
	pendingAddMessage string

	renaming    bool
	renameInput textinput.Model
	renameErr   string

	createInput textinput.Model
	createErr   string

	nav  navStack
	dark bool
}

func newAppModel(client *api.Client, app *state.AppState, log *slog.Logger) appModel {
	m := appModel{
		client: client,
		app:    app,
		log:    log,
		page:   model.PageData,
		nav:    newNavStack(),
	}

	m.quoteTable = newQuoteTable()
	m.listTable = newListTable()

	m.addInput = textinput.New()
	m.addInput.Placeholder = "Enter ticker"
	m.addInput.CharLimit = 12

	m.renameInput = textinput.New()
	m.renameInput.CharLimit = 80

	m.createInput = textinput.New()
	m.createInput.Placeholder = "New watchlist name"
	m.createInput.CharLimit = 80

	// Pick the palette before the first frame.
	theme, err := app.Theme(context.Background())
	if err != nil {
		log.Error("reading theme", "error", err)
	}
	applyTheme(theme)
	m.dark = theme == "dark"

	return m
}

func (m appModel) Init() tea.Cmd {
	return bootCmd(m.client)
}

// Run starts the TUI and blocks until it exits.
func Run(client *api.Client, app *state.AppState, log *slog.Logger) error {
	applyColorProfilePreference()
	p := tea.NewProgram(newAppModel(client, app, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newQuoteTable() table.Model {
	cols := []table.Column{
		{Title: "TICKER", Width: 10},
		{Title: "PRICE", Width: 12},
		{Title: "CHANGE", Width: 9},
		{Title: "BID", Width: 12},
		{Title: "ASK", Width: 12},
		{Title: "VOLUME", Width: 14},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(12))
	t.SetStyles(tableStyles())
	return t
}

func newListTable() table.Model {
	cols := []table.Column{
		{Title: "NAME", Width: 32},
		{Title: "LAST MODIFIED", Width: 22},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(12))
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorMuted)
	s.Selected = s.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(false)
	return s
}

// ---- navigation / page loaders ----

// openWatchlist switches to the data page for one watchlist and fires its
// fetch. Everything previously rendered in the quote table is cleared first.
func (m *appModel) openWatchlist(id int64, name string, push bool) tea.Cmd {
	m.page = model.PageData
	m.activeID = id
	m.activeName = name
	m.data = model.WatchlistData{}
	m.quoteTable.SetRows(nil)
	m.quoteTable.SetCursor(0)
	m.closeModal()
	m.cancelRename()
	m.loading = true
	m.setStatus("", false)
	if push {
		m.nav.push(navEntry{page: model.PageData, id: id, name: name})
	}
	return loadDataCmd(m.client, id, name)
}

func (m *appModel) openEdit(push bool) tea.Cmd {
	m.page = model.PageEdit
	m.listTable.SetRows(nil)
	m.listTable.SetCursor(0)
	m.closeModal()
	m.cancelRename()
	m.loading = true
	m.setStatus("", false)
	if push {
		m.nav.push(navEntry{page: model.PageEdit})
	}
	m.persistPage(model.PageEdit)
	return loadListsCmd(m.client)
}

func (m *appModel) openCreate(push bool) tea.Cmd {
	m.page = model.PageCreate
	m.closeModal()
	m.cancelRename()
	m.createErr = ""
	m.createInput.SetValue("")
	m.createInput.Focus()
	m.setStatus("", false)
	if push {
		m.nav.push(navEntry{page: model.PageCreate})
	}
	m.persistPage(model.PageCreate)
	return nil
}

// reopenEntry replays a history entry through the normal loader path.
func (m *appModel) reopenEntry(e navEntry) tea.Cmd {
	switch e.page {
	case model.PageData:
		return m.openWatchlist(e.id, e.name, false)
	case model.PageEdit:
		return m.openEdit(false)
	case model.PageCreate:
		return m.openCreate(false)
	}
	return nil
}

// pickInitialPage applies the persisted page state after the boot fetch, or
// the defaults when there is none. With zero watchlists the create page is
// forced regardless of anything persisted.
func (m *appModel) pickInitialPage() tea.Cmd {
	if len(m.watchlists) == 0 {
		return m.openCreate(true)
	}

	ctx := context.Background()
	page, err := m.app.ActivePage(ctx)
	if err != nil {
		m.log.Error("reading page state", "error", err)
	}

	switch page {
	case model.PageData:
		idStr, name, err := m.app.ActiveWatchlist(ctx)
		if err != nil {
			m.log.Error("reading watchlist state", "error", err)
		}
		if id, perr := strconv.ParseInt(idStr, 10, 64); perr == nil {
			return m.openWatchlist(id, name, true)
		}
		// Stale or missing pair: fall back to the first watchlist.
		first := m.watchlists[0]
		return m.openWatchlist(first.ID, first.Name, true)
	case model.PageEdit:
		return m.openEdit(true)
	case model.PageCreate:
		return m.openCreate(true)
	default:
		first := m.watchlists[0]
		return m.openWatchlist(first.ID, first.Name, true)
	}
}

// ---- table refresh ----

func (m *appModel) refreshQuoteRows() {
	rows := make([]table.Row, 0, len(m.data.Rows))
	for _, r := range m.data.Rows {
		rows = append(rows, table.Row{
			r.Quote.Ticker,
			format.USD(r.Quote.Price),
			format.Percent(r.Quote.DailyReturn, 2),
			format.USD(r.Quote.Bid),
			format.USD(r.Quote.Ask),
			format.IntegerComma(r.Quote.Volume),
		})
	}
	m.quoteTable.SetRows(rows)
	if m.quoteTable.Cursor() >= len(rows) {
		m.quoteTable.SetCursor(0)
	}
}

func (m *appModel) refreshListRows() {
	rows := make([]table.Row, 0, len(m.watchlists))
	for _, wl := range m.watchlists {
		rows = append(rows, table.Row{wl.Name, wl.LastModified})
	}
	m.listTable.SetRows(rows)
	if m.listTable.Cursor() >= len(rows) {
		m.listTable.SetCursor(0)
	}
}

// selectedQuoteRow returns the data row under the quote-table cursor.
func (m *appModel) selectedQuoteRow() (model.QuoteRow, bool) {
	i := m.quoteTable.Cursor()
	if i < 0 || i >= len(m.data.Rows) {
		return model.QuoteRow{}, false
	}
	return m.data.Rows[i], true
}

func (m *appModel) selectedWatchlist() (model.Watchlist, bool) {
	i := m.listTable.Cursor()
	if i < 0 || i >= len(m.watchlists) {
		return model.Watchlist{}, false
	}
	return m.watchlists[i], true
}

// ---- modal / rename helpers ----

// openModal replaces any open modal; visible overlays are mutually exclusive.
func (m *appModel) openModal(kind modalKind) {
	m.modal = kind
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalStockID = 0
	m.modalTicker = ""
	m.modalAnchor = 0
	m.addFeedback = ""
	m.addFeedbackErr = false
	m.pendingAddMessage = ""
	m.addInput.Blur()
}

// startRename swaps the title for an input. A second trigger while a rename
// is already open is a no-op.
func (m *appModel) startRename() {
	if m.renaming {
		return
	}
	m.renaming = true
	m.renameErr = ""
	m.renameInput.SetValue(m.activeName)
	m.renameInput.CursorEnd()
	m.renameInput.Focus()
	m.closeModal()
}

func (m *appModel) cancelRename() {
	m.renaming = false
	m.renameErr = ""
	m.renameInput.Blur()
}

// ---- persistence ----

func (m *appModel) persistPage(p model.Page) {
	if err := m.app.SetActivePage(context.Background(), p); err != nil {
		m.log.Error("persisting page state", "error", err)
	}
}

func (m *appModel) persistActiveWatchlist(id int64, name string) {
	if err := m.app.SetActiveWatchlist(context.Background(), strconv.FormatInt(id, 10), name); err != nil {
		m.log.Error("persisting watchlist state", "error", err)
	}
}

func (m *appModel) clearActiveWatchlist() {
	if err := m.app.RemoveActiveWatchlist(context.Background()); err != nil {
		m.log.Error("clearing watchlist state", "error", err)
	}
}

func (m *appModel) toggleTheme() {
	m.dark = !m.dark
	applyTheme(themeName(m.dark))
	if err := m.app.SetTheme(context.Background(), themeName(m.dark)); err != nil {
		m.log.Error("persisting theme", "error", err)
	}
}

func (m *appModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// errorText prefers the backend's inline {error} message over transport noise.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
