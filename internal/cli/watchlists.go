package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newWatchlistsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlists",
		Short: "Watchlist commands",
	}
	cmd.AddCommand(newWatchlistsListCmd(app))
	cmd.AddCommand(newWatchlistsCreateCmd(app))
	cmd.AddCommand(newWatchlistsRenameCmd(app))
	cmd.AddCommand(newWatchlistsDeleteCmd(app))
	return cmd
}

func newWatchlistsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			lists, err := client.Watchlists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": lists})
		},
	}
}

func newWatchlistsCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			created, err := client.CreateWatchlist(cmd.Context(), strings.TrimSpace(name))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Watchlist name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWatchlistsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <watchlist-id>",
		Short: "Rename a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.RenameWatchlist(cmd.Context(), id, strings.TrimSpace(name)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "name": strings.TrimSpace(name)}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New watchlist name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWatchlistsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <watchlist-id>",
		Short: "Delete a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteWatchlist(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
