package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Modal overlays. At most one modal is visible at a time: opening any modal
// replaces whatever was open before, and each modal's state lives in fields
// of the app model rather than anywhere global.

type modalKind int

const (
	modalNone modalKind = iota
	// modalActions is the per-watchlist actions menu (rename/add/delete).
	modalActions
	modalConfirmDelete
	modalAddStock
	// modalStockActions is the per-row menu; it carries the row's stock id.
	modalStockActions
	modalProfile
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalWidth(appWidth int) int {
	w := appWidth - 8
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(appWidth int, title, content string) string {
	w := modalWidth(appWidth)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(w).
		Padding(0, 1).
		Background(colorModalHeaderBg).
		Foreground(colorSurfaceFg).
		Render(xansi.Cut(title, 0, w-2))

	body := lipgloss.NewStyle().
		Width(w).
		Padding(0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Render(header + "\n" + body)
}

func renderConfirmModal(appWidth int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
	help := styleMuted().Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(appWidth, title, content)
}

// anchorFraction converts a row's position within its viewport to a vertical
// placement fraction for the overlay, the same percent-of-container math the
// web dashboard uses to pin an overlay next to the row that opened it.
func anchorFraction(anchorRow, viewportRows int) float64 {
	if viewportRows <= 1 {
		return 0.5
	}
	if anchorRow < 0 {
		anchorRow = 0
	}
	if anchorRow >= viewportRows {
		anchorRow = viewportRows - 1
	}
	return float64(anchorRow) / float64(viewportRows-1)
}
