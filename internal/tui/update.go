package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"watchboard/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case bootMsg:
		return m.handleBoot(msg)

	case dataLoadedMsg:
		return m.handleDataLoaded(msg)

	case listsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// List fetches render like empty results; the error only lands in
			// the status line.
			m.setStatus(errorText(msg.err), true)
		}
		m.watchlists = msg.lists
		m.refreshListRows()
		return m, nil

	case renameDoneMsg:
		return m.handleRenameDone(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case createDoneMsg:
		return m.handleCreateDone(msg)

	case addStockDoneMsg:
		return m.handleAddStockDone(msg)

	case removeStockDoneMsg:
		return m.handleRemoveStockDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleBoot(msg bootMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.setStatus(errorText(msg.err), true)
		return m, nil
	}
	m.watchlists = msg.lists
	m.refreshListRows()
	cmd := m.pickInitialPage()
	return m, cmd
}

func (m appModel) handleDataLoaded(msg dataLoadedMsg) (tea.Model, tea.Cmd) {
	if m.page != model.PageData || msg.id != m.activeID {
		// A navigation happened while this fetch was in flight.
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.setStatus(errorText(msg.err), true)
	}
	m.data = msg.data
	m.refreshQuoteRows()

	// The loader owns the state write: the now-active watchlist and page.
	m.persistActiveWatchlist(msg.id, msg.name)
	m.persistPage(model.PageData)

	// Second phase of the add-stock feedback, once the refreshed table is in.
	if m.modal == modalAddStock && m.pendingAddMessage != "" {
		m.addFeedback = m.pendingAddMessage
		m.addFeedbackErr = false
		m.pendingAddMessage = ""
	}
	return m, nil
}

func (m appModel) handleRenameDone(msg renameDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Stay in rename mode and show the backend's message inline.
		m.renameErr = errorText(msg.err)
		return m, nil
	}
	m.renaming = false
	m.renameErr = ""
	m.renameInput.Blur()
	m.activeName = msg.name
	for i := range m.watchlists {
		if m.watchlists[i].ID == msg.id {
			m.watchlists[i].Name = msg.name
		}
	}
	m.persistActiveWatchlist(msg.id, msg.name)
	return m, nil
}

func (m appModel) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Keep the confirmation open; the user can retry or cancel.
		m.setStatus(errorText(msg.err), true)
		m.log.Error("deleting watchlist", "error", msg.err)
		return m, nil
	}
	// Full-reload analog: drop the active pair, land on the list page, and
	// restart the boot flow from the server's idea of the world.
	m.clearActiveWatchlist()
	m.persistPage(model.PageEdit)
	m.closeModal()
	m.loading = true
	return m, bootCmd(m.client)
}

func (m appModel) handleCreateDone(msg createDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.createErr = errorText(msg.err)
		return m, nil
	}
	m.createErr = ""
	m.watchlists = append(m.watchlists, msg.created)
	cmd := m.openWatchlist(msg.created.ID, msg.created.Name, true)
	return m, cmd
}

func (m appModel) handleAddStockDone(msg addStockDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Form stays open with the input intact.
		m.addFeedback = errorText(msg.err)
		m.addFeedbackErr = true
		return m, nil
	}
	m.addFeedback = msg.result.Loading
	m.addFeedbackErr = false
	m.pendingAddMessage = msg.result.Message
	m.addInput.SetValue("")
	return m, loadDataCmd(m.client, m.activeID, m.activeName)
}

func (m appModel) handleRemoveStockDone(msg removeStockDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Best-effort: removal failures are logged, not surfaced.
		m.log.Error("removing stock", "stock_id", m.modalStockID, "error", msg.err)
		return m, nil
	}
	m.closeModal()
	m.loading = true
	return m, loadDataCmd(m.client, m.activeID, m.activeName)
}

// ---- key dispatch ----

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	if m.renaming && m.page == model.PageData {
		return m.handleRenameKey(msg)
	}
	if m.page == model.PageCreate {
		return m.handleCreateKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.toggleTheme()
		return m, nil
	case "p":
		m.openModal(modalProfile)
		return m, nil
	case "?":
		m.openModal(modalHelp)
		return m, nil
	case "[":
		if e, ok := m.nav.back(); ok {
			return m, m.reopenEntry(e)
		}
		return m, nil
	case "]":
		if e, ok := m.nav.forward(); ok {
			return m, m.reopenEntry(e)
		}
		return m, nil
	case "v":
		return m, m.openEdit(true)
	case "n":
		return m, m.openCreate(true)
	}

	switch m.page {
	case model.PageData:
		return m.handleDataKey(msg)
	case model.PageEdit:
		return m.handleEditKey(msg)
	}
	return m, nil
}

func (m appModel) handleDataKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if wl, ok := m.adjacentWatchlist(-1); ok {
			return m, m.openWatchlist(wl.ID, wl.Name, true)
		}
		return m, nil
	case "right", "l":
		if wl, ok := m.adjacentWatchlist(1); ok {
			return m, m.openWatchlist(wl.ID, wl.Name, true)
		}
		return m, nil
	case "e":
		m.openModal(modalActions)
		return m, nil
	case "r":
		m.startRename()
		return m, nil
	case "a", "+":
		m.openAddStock()
		return m, nil
	case "d":
		m.confirmTarget = model.Watchlist{ID: m.activeID, Name: m.activeName}
		m.confirmFocus = confirmFocusCancel
		m.openModal(modalConfirmDelete)
		return m, nil
	case "enter", "x":
		if row, ok := m.selectedQuoteRow(); ok {
			m.modalStockID = row.StockID
			m.modalTicker = row.Quote.Ticker
			m.modalAnchor = m.quoteTable.Cursor()
			m.openModal(modalStockActions)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.quoteTable, cmd = m.quoteTable.Update(msg)
	return m, cmd
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if wl, ok := m.selectedWatchlist(); ok {
			return m, m.openWatchlist(wl.ID, wl.Name, true)
		}
		return m, nil
	case "d", "backspace":
		if wl, ok := m.selectedWatchlist(); ok {
			m.confirmTarget = wl
			m.confirmFocus = confirmFocusCancel
			m.openModal(modalConfirmDelete)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.listTable, cmd = m.listTable.Update(msg)
	return m, cmd
}

func (m appModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// The create page cannot be left before the first watchlist exists.
		if len(m.watchlists) > 0 {
			return m, m.openEdit(true)
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.createInput.Value())
		if name == "" {
			m.createErr = "Watchlist name cannot be empty."
			return m, nil
		}
		m.createErr = ""
		return m, createCmd(m.client, name)
	}
	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

func (m appModel) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelRename()
		return m, nil
	case "ctrl+u":
		m.renameInput.SetValue("")
		return m, nil
	case "enter":
		newName := m.renameInput.Value()
		if strings.TrimSpace(newName) == "" {
			// Stay in rename mode until there is something to save.
			m.renameErr = "Name cannot be empty."
			return m, nil
		}
		if newName == m.activeName {
			// Nothing changed; exit without a network call.
			m.cancelRename()
			return m, nil
		}
		return m, renameCmd(m.client, m.activeID, newName)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m appModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalActions:
		switch msg.String() {
		case "r":
			m.startRename()
		case "a":
			m.openAddStock()
		case "d":
			m.confirmTarget = model.Watchlist{ID: m.activeID, Name: m.activeName}
			m.confirmFocus = confirmFocusCancel
			m.openModal(modalConfirmDelete)
		case "esc", "e", "q":
			m.closeModal()
		}
		return m, nil

	case modalConfirmDelete:
		switch msg.String() {
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				m.loading = true
				return m, deleteCmd(m.client, m.confirmTarget.ID)
			}
			m.closeModal()
		case "esc":
			m.closeModal()
		}
		return m, nil

	case modalAddStock:
		switch msg.String() {
		case "esc":
			m.closeModal()
			return m, nil
		case "ctrl+u":
			m.addInput.SetValue("")
			return m, nil
		case "enter":
			ticker := strings.ToUpper(strings.TrimSpace(m.addInput.Value()))
			if ticker == "" {
				// Inline validation; no request is made.
				m.addFeedback = "Ticker cannot be empty."
				m.addFeedbackErr = true
				return m, nil
			}
			m.addFeedback = ""
			m.addFeedbackErr = false
			return m, addStockCmd(m.client, ticker, m.activeID)
		}
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd

	case modalStockActions:
		switch msg.String() {
		case "x", "d", "enter":
			return m, removeStockCmd(m.client, m.modalStockID, m.activeID)
		case "esc", "q":
			m.closeModal()
		}
		return m, nil

	case modalProfile:
		switch msg.String() {
		case "t":
			m.toggleTheme()
		case "esc", "p", "q":
			m.closeModal()
		}
		return m, nil

	case modalHelp:
		switch msg.String() {
		case "esc", "q", "?":
			m.closeModal()
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) openAddStock() {
	m.openModal(modalAddStock)
	m.addInput.SetValue("")
	m.addFeedback = ""
	m.addFeedbackErr = false
	m.addInput.Focus()
}

// adjacentWatchlist cycles through the sidebar relative to the active one.
func (m *appModel) adjacentWatchlist(delta int) (model.Watchlist, bool) {
	if len(m.watchlists) == 0 {
		return model.Watchlist{}, false
	}
	cur := 0
	for i, wl := range m.watchlists {
		if wl.ID == m.activeID {
			cur = i
			break
		}
	}
	next := (cur + delta + len(m.watchlists)) % len(m.watchlists)
	if m.watchlists[next].ID == m.activeID {
		return model.Watchlist{}, false
	}
	return m.watchlists[next], true
}

func (m *appModel) resize() {
	h := m.height - 9
	if h < 5 {
		h = 5
	}
	m.quoteTable.SetHeight(h)
	m.listTable.SetHeight(h)
}
