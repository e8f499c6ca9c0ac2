package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"watchboard/internal/api"
	"watchboard/internal/config"
	"watchboard/internal/format"
	"watchboard/internal/state"
	"watchboard/internal/tui"
)

type App struct {
	Profile    string
	BaseURL    string
	UserID     string
	Cookie     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "watchboard",
		Short:        "Watchlist dashboard TUI + scriptable client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  watchboard

  # Scriptable commands
  watchboard watchlists list
  watchboard watchlists create --name tech
  watchboard stocks add NVDA --watchlist 3
  watchboard quotes tech
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Profile, "profile", envOr("WATCHBOARD_PROFILE", ""), "Profile dir holding config, state and logs (default: ~/.watchboard)")
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "Dashboard backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.UserID, "user", "", "User id for state namespacing (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Cookie, "cookie", "", "Session Cookie header (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newWatchlistsCmd(app))
	cmd.AddCommand(newStocksCmd(app))
	cmd.AddCommand(newQuotesCmd(app))

	return cmd
}

func runTUI(app *App) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return err
	}
	// The alternate screen owns stdout, so logs go to the profile dir only.
	log := newLogger(cfg)

	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return err
	}
	store, err := state.Open(context.Background(), cfg.ProfileDir)
	if err != nil {
		return err
	}
	defer store.Close()

	client := api.NewClient(cfg.BaseURL, cfg.Cookie)
	log.Info("starting dashboard", "base_url", cfg.BaseURL, "user_id", cfg.UserID)
	return tui.Run(client, state.NewAppState(store, cfg.UserID), log)
}

// loadConfig resolves the profile config and lets explicit flags win.
func loadConfig(app *App) (*config.Config, error) {
	cfg, err := config.Load(app.Profile)
	if err != nil {
		return nil, err
	}
	if app.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(app.BaseURL, "/")
	}
	if app.UserID != "" {
		cfg.UserID = app.UserID
	}
	if app.Cookie != "" {
		cfg.Cookie = app.Cookie
	}
	return cfg, nil
}

func newClient(app *App) (*api.Client, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.BaseURL, cfg.Cookie), nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
