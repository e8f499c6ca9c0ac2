package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"watchboard/internal/model"
)

const sidebarWidth = 24

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	height := m.height
	if height <= 0 {
		height = 30
	}

	header := lipgloss.NewStyle().Bold(true).Render("Watchboard") +
		styleMuted().Render("  "+m.headerContext())

	contentW := width - sidebarWidth - 3
	if contentW < 30 {
		contentW = 30
	}
	contentH := height - 5
	if contentH < 8 {
		contentH = 8
	}

	sidebar := m.viewSidebar(contentH)

	var content string
	switch m.page {
	case model.PageData:
		content = m.viewDataPage(contentW)
	case model.PageEdit:
		content = m.viewEditPage(contentW)
	case model.PageCreate:
		content = m.viewCreatePage(contentW)
	}

	if m.modal != modalNone {
		content = m.viewModal(contentW, contentH)
	}
	content = lipgloss.NewStyle().Width(contentW).Height(contentH).Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", content)

	status := m.viewStatus(width)
	footer := styleMuted().Render(m.footerHints())

	return strings.Join([]string{header, body, status, footer}, "\n")
}

func (m appModel) headerContext() string {
	switch m.page {
	case model.PageData:
		return m.activeName
	case model.PageEdit:
		return "all watchlists"
	case model.PageCreate:
		return "new watchlist"
	}
	return ""
}

func (m appModel) viewSidebar(height int) string {
	active := lipgloss.NewStyle().
		Background(colorSelectedBg).
		Foreground(colorSelectedFg).
		Width(sidebarWidth - 2).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Width(sidebarWidth - 2).
		Padding(0, 1)

	var b strings.Builder
	for _, wl := range m.watchlists {
		name := xansi.Cut(wl.Name, 0, sidebarWidth-4)
		if m.page == model.PageData && wl.ID == m.activeID {
			b.WriteString(active.Render(name))
		} else {
			b.WriteString(inactive.Render(name))
		}
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render(strings.Repeat("─", sidebarWidth-2)))
	b.WriteString("\n")
	if m.page == model.PageEdit {
		b.WriteString(active.Render("View all"))
	} else {
		b.WriteString(inactive.Render("View all"))
	}
	b.WriteString("\n")
	if m.page == model.PageCreate {
		b.WriteString(active.Render("New watchlist"))
	} else {
		b.WriteString(inactive.Render("New watchlist"))
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderRight(true).
		Render(b.String())
}

func (m appModel) viewDataPage(width int) string {
	var title string
	if m.renaming {
		line := m.renameInput.View() + styleMuted().Render("  enter: save  ctrl+u: clear  esc: cancel")
		if m.renameErr != "" {
			line = lipgloss.NewStyle().Foreground(colorError).Render(m.renameErr) + "\n" + line
		}
		title = line
	} else {
		title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(m.activeName)
	}

	meta := styleMuted().Render(fmt.Sprintf("COUNT : %d    LAST MODIFIED : %s",
		m.data.Meta.Count, m.data.Meta.LastModified))

	var body string
	if len(m.data.Rows) == 0 && !m.loading {
		body = lipgloss.NewStyle().Italic(true).Foreground(colorMuted).
			Render("No stocks currently inside this watchlist.")
	} else {
		body = m.quoteTable.View()
	}

	return strings.Join([]string{title, meta, "", body}, "\n")
}

func (m appModel) viewEditPage(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Watchlists")
	var body string
	if len(m.watchlists) == 0 && !m.loading {
		body = lipgloss.NewStyle().Italic(true).Foreground(colorMuted).Render("No watchlists yet.")
	} else {
		body = m.listTable.View()
	}
	return strings.Join([]string{title, "", body}, "\n")
}

func (m appModel) viewCreatePage(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Create a watchlist")
	lines := []string{title, ""}
	if m.createErr != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorError).Render(m.createErr))
	}
	lines = append(lines, m.createInput.View(), "", styleMuted().Render("enter: create"))
	return strings.Join(lines, "\n")
}

func (m appModel) viewModal(width, height int) string {
	var box string
	vPos := 0.5

	switch m.modal {
	case modalActions:
		content := strings.Join([]string{
			"r  rename watchlist",
			"a  add stock",
			"d  delete watchlist",
			"",
			styleMuted().Render("esc: close"),
		}, "\n")
		box = renderModalBox(width, "Watchlist: "+m.activeName, content)

	case modalConfirmDelete:
		box = renderConfirmModal(width,
			"Delete watchlist",
			fmt.Sprintf("Delete %q and everything in it?", m.confirmTarget.Name),
			"Delete", "Cancel", m.confirmFocus)

	case modalAddStock:
		lines := []string{}
		if m.addFeedback != "" {
			color := colorOK
			if m.addFeedbackErr {
				color = colorError
			}
			lines = append(lines, lipgloss.NewStyle().Foreground(color).Render(m.addFeedback))
		}
		lines = append(lines, m.addInput.View(), "",
			styleMuted().Render("enter: add   ctrl+u: clear   esc: done"))
		box = renderModalBox(width, "Add stock", strings.Join(lines, "\n"))

	case modalStockActions:
		content := strings.Join([]string{
			"x  remove from watchlist",
			"",
			styleMuted().Render("esc: close"),
		}, "\n")
		box = renderModalBox(width, "Stock: "+m.modalTicker, content)
		// Pin near the row that opened it.
		vPos = anchorFraction(m.modalAnchor, m.quoteTable.Height())

	case modalProfile:
		content := strings.Join([]string{
			"Theme: " + themeName(m.dark),
			"",
			"t  toggle light/dark",
			"",
			styleMuted().Render("esc: close"),
		}, "\n")
		box = renderModalBox(width, "Profile", content)
		// The profile overlay dims what's behind it.
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(colorControlBg))

	case modalHelp:
		box = renderModalBox(width, "Help", renderHelp(modalWidth(width)-4))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Position(vPos), box)
}

func (m appModel) viewStatus(width int) string {
	s := m.status
	if m.loading {
		s = "Loading…"
	}
	st := styleMuted()
	if m.statusErr && !m.loading {
		st = lipgloss.NewStyle().Foreground(colorError)
	}
	return st.Render(xansi.Cut(s, 0, width))
}

func (m appModel) footerHints() string {
	if m.modal != modalNone {
		return "esc: close"
	}
	switch m.page {
	case model.PageData:
		if m.renaming {
			return "enter: save  esc: cancel"
		}
		return "↑/↓: rows  ←/→: switch list  enter: stock  a: add  r: rename  d: delete  v: all  n: new  [ ]: history  t: theme  ?: help  q: quit"
	case model.PageEdit:
		return "↑/↓: rows  enter: open  d: delete  n: new  [ ]: history  t: theme  ?: help  q: quit"
	case model.PageCreate:
		return "enter: create  esc: back"
	}
	return ""
}
