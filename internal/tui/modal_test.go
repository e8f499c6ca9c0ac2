package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"watchboard/internal/model"
)

func TestOpenModalReplacesPreviousModal(t *testing.T) {
	m := newTestModel(t)
	m.openModal(modalActions)
	m.openModal(modalAddStock)
	if m.modal != modalAddStock {
		t.Fatalf("modal = %v; want add-stock only", m.modal)
	}
	m.openModal(modalProfile)
	if m.modal != modalProfile {
		t.Fatalf("modal = %v; want profile only", m.modal)
	}
}

func TestActionsModalTogglesClosed(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m, _ = update(t, m, keyRune('e'))
	if m.modal != modalActions {
		t.Fatalf("modal = %v after first press", m.modal)
	}
	m, _ = update(t, m, keyRune('e'))
	if m.modal != modalNone {
		t.Fatalf("modal = %v after second press; want closed", m.modal)
	}
}

func TestConfirmDeleteDefaultsToCancel(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m, _ = update(t, m, keyRune('d'))
	if m.modal != modalConfirmDelete {
		t.Fatalf("modal = %v; want confirm", m.modal)
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatalf("focus = %v; want cancel by default", m.confirmFocus)
	}

	// Enter on Cancel closes without issuing the delete.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("cancel produced a command")
	}
	if m.modal != modalNone {
		t.Fatalf("modal = %v; want closed", m.modal)
	}
}

func TestConfirmDeleteEnterOnConfirmIssuesDelete(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})
	m, _ = update(t, m, keyRune('d'))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.confirmFocus != confirmFocusConfirm {
		t.Fatalf("focus = %v after tab; want confirm", m.confirmFocus)
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("confirm produced no command")
	}
	if !m.loading {
		t.Fatalf("loading not set while delete is in flight")
	}
}

func TestAddStockEmptyTickerMakesNoRequest(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m, _ = update(t, m, keyRune('a'))
	if m.modal != modalAddStock {
		t.Fatalf("modal = %v; want add-stock", m.modal)
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty ticker produced a command")
	}
	if !m.addFeedbackErr || m.addFeedback == "" {
		t.Fatalf("expected inline validation, got (%q, %v)", m.addFeedback, m.addFeedbackErr)
	}
	if m.modal != modalAddStock {
		t.Fatalf("modal closed on validation failure")
	}
}

func TestAddStockReopenClearsStaleFeedback(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m, _ = update(t, m, keyRune('a'))
	m.addFeedback = "Ticker cannot be empty."
	m.addFeedbackErr = true
	m.addInput.SetValue("nv")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, keyRune('a'))
	if m.addFeedback != "" || m.addFeedbackErr {
		t.Fatalf("stale feedback survived reopen: %q", m.addFeedback)
	}
	if m.addInput.Value() != "" {
		t.Fatalf("stale input survived reopen: %q", m.addInput.Value())
	}
}

func TestRenameSameNameExitsWithoutRequest(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m, _ = update(t, m, keyRune('r'))
	if !m.renaming {
		t.Fatalf("rename mode not entered")
	}
	if m.renameInput.Value() != "tech" {
		t.Fatalf("rename input seeded with %q", m.renameInput.Value())
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("unchanged name produced a network command")
	}
	if m.renaming {
		t.Fatalf("rename mode not exited on unchanged name")
	}
}

func TestRenameEmptyNameStaysInRenameMode(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})
	m, _ = update(t, m, keyRune('r'))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty name produced a command")
	}
	if !m.renaming {
		t.Fatalf("rename mode exited on empty name")
	}
	if m.renameErr == "" {
		t.Fatalf("no inline error for empty name")
	}
}

func TestStartRenameIsIdempotent(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})

	m.startRename()
	m.renameInput.SetValue("tech-draft")
	m.startRename()
	if m.renameInput.Value() != "tech-draft" {
		t.Fatalf("second trigger reset the draft to %q", m.renameInput.Value())
	}
}

func TestRenameDoneUpdatesSidebarAndState(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: sampleLists()})
	m, _ = update(t, m, keyRune('r'))

	m, _ = update(t, m, renameDoneMsg{id: 1, name: "growth"})
	if m.renaming {
		t.Fatalf("still renaming after success")
	}
	if m.activeName != "growth" {
		t.Fatalf("activeName = %q", m.activeName)
	}
	found := false
	for _, wl := range m.watchlists {
		if wl.ID == 1 && wl.Name == "growth" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sidebar entry not renamed: %+v", m.watchlists)
	}
}

func TestCreatePageEmptyNameShowsError(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, bootMsg{lists: nil})
	if m.page != model.PageCreate {
		t.Fatalf("page = %q", m.page)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty name produced a command")
	}
	if m.createErr == "" {
		t.Fatalf("no inline error for empty name")
	}

	// Esc cannot leave the create page while no watchlist exists.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != model.PageCreate {
		t.Fatalf("escaped the create page with zero watchlists")
	}
}

func TestModalWidthClamps(t *testing.T) {
	if got := modalWidth(10); got != 24 {
		t.Fatalf("modalWidth(10) = %d", got)
	}
	if got := modalWidth(500); got != 64 {
		t.Fatalf("modalWidth(500) = %d", got)
	}
}

func TestAnchorFractionBounds(t *testing.T) {
	if got := anchorFraction(0, 10); got != 0 {
		t.Fatalf("anchorFraction(0, 10) = %v", got)
	}
	if got := anchorFraction(9, 10); got != 1 {
		t.Fatalf("anchorFraction(9, 10) = %v", got)
	}
	if got := anchorFraction(5, 0); got != 0.5 {
		t.Fatalf("anchorFraction with empty viewport = %v", got)
	}
	if got := anchorFraction(-3, 10); got != 0 {
		t.Fatalf("anchorFraction with negative row = %v", got)
	}
	mid := anchorFraction(4, 9)
	if mid <= 0 || mid >= 1 {
		t.Fatalf("interior anchor out of range: %v", mid)
	}
}

func TestRenderConfirmModalMentionsTarget(t *testing.T) {
	out := renderConfirmModal(60, "Delete watchlist", `Delete "tech"? This cannot be undone.`, "Confirm", "Cancel", confirmFocusCancel)
	if !strings.Contains(out, "tech") {
		t.Fatalf("confirm body missing target:\n%s", out)
	}
	if !strings.Contains(out, "Cancel") || !strings.Contains(out, "Confirm") {
		t.Fatalf("confirm buttons missing:\n%s", out)
	}
}
