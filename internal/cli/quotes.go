package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"watchboard/internal/api"
	"watchboard/internal/model"
)

func newQuotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quotes <watchlist-id-or-name>",
		Short: "Show the quotes of a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			wl, err := resolveWatchlist(cmd, client, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			data, err := client.WatchlistData(cmd.Context(), wl.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"watchlist": wl,
					"quotes":    data.Rows,
					"meta_data": data.Meta,
				},
			})
		},
	}
}

// resolveWatchlist accepts either a numeric id or a (unique) name.
func resolveWatchlist(cmd *cobra.Command, client *api.Client, arg string) (model.Watchlist, error) {
	arg = strings.TrimSpace(arg)
	lists, err := client.Watchlists(cmd.Context())
	if err != nil {
		return model.Watchlist{}, err
	}

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for _, wl := range lists {
			if wl.ID == id {
				return wl, nil
			}
		}
		return model.Watchlist{}, fmt.Errorf("no watchlist with id %d", id)
	}

	var match model.Watchlist
	var found int
	for _, wl := range lists {
		if strings.EqualFold(wl.Name, arg) {
			match = wl
			found++
		}
	}
	switch found {
	case 1:
		return match, nil
	case 0:
		return model.Watchlist{}, fmt.Errorf("no watchlist named %q", arg)
	default:
		return model.Watchlist{}, fmt.Errorf("%d watchlists named %q; use the id", found, arg)
	}
}
