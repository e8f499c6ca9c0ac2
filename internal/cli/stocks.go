package cli

import (
	"github.com/spf13/cobra"
)

func newStocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks",
		Short: "Stock commands",
	}
	cmd.AddCommand(newStocksAddCmd(app))
	cmd.AddCommand(newStocksRemoveCmd(app))
	return cmd
}

func newStocksAddCmd(app *App) *cobra.Command {
	var watchlistID int64

	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Add a stock to a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.AddStock(cmd.Context(), args[0], watchlistID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().Int64Var(&watchlistID, "watchlist", 0, "Watchlist id")
	_ = cmd.MarkFlagRequired("watchlist")
	return cmd
}

func newStocksRemoveCmd(app *App) *cobra.Command {
	var watchlistID int64

	cmd := &cobra.Command{
		Use:   "remove <stock-id>",
		Short: "Remove a stock from a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stockID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.RemoveStock(cmd.Context(), stockID, watchlistID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"stock_id": stockID, "removed": true}})
		},
	}

	cmd.Flags().Int64Var(&watchlistID, "watchlist", 0, "Watchlist id")
	_ = cmd.MarkFlagRequired("watchlist")
	return cmd
}
