package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"watchboard/internal/api"
	"watchboard/internal/model"
)

// Network commands. Each fetch resolves to exactly one message; the Update
// dispatch on message type is what keeps one user action mapped to one
// handler.

type bootMsg struct {
	lists []model.Watchlist
	err   error
}

type dataLoadedMsg struct {
	id   int64
	name string
	data model.WatchlistData
	err  error
}

type listsLoadedMsg struct {
	lists []model.Watchlist
	err   error
}

type renameDoneMsg struct {
	id   int64
	name string
	err  error
}

type deleteDoneMsg struct {
	err error
}

type createDoneMsg struct {
	created model.Watchlist
	err     error
}

type addStockDoneMsg struct {
	result api.AddStockResult
	err    error
}

type removeStockDoneMsg struct {
	err error
}

func bootCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		lists, err := client.Watchlists(context.Background())
		return bootMsg{lists: lists, err: err}
	}
}

func loadDataCmd(client *api.Client, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.WatchlistData(context.Background(), id)
		return dataLoadedMsg{id: id, name: name, data: data, err: err}
	}
}

func loadListsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		lists, err := client.Watchlists(context.Background())
		return listsLoadedMsg{lists: lists, err: err}
	}
}

func renameCmd(client *api.Client, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		err := client.RenameWatchlist(context.Background(), id, name)
		return renameDoneMsg{id: id, name: name, err: err}
	}
}

func deleteCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: client.DeleteWatchlist(context.Background(), id)}
	}
}

func createCmd(client *api.Client, name string) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateWatchlist(context.Background(), name)
		return createDoneMsg{created: created, err: err}
	}
}

func addStockCmd(client *api.Client, ticker string, watchlistID int64) tea.Cmd {
	return func() tea.Msg {
		result, err := client.AddStock(context.Background(), ticker, watchlistID)
		return addStockDoneMsg{result: result, err: err}
	}
}

func removeStockCmd(client *api.Client, stockID, watchlistID int64) tea.Cmd {
	return func() tea.Msg {
		return removeStockDoneMsg{err: client.RemoveStock(context.Background(), stockID, watchlistID)}
	}
}
