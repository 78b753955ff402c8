package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"readmegen/internal/database"
	"readmegen/internal/server"
	"readmegen/internal/services"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the readmegen HTTP API. Generation sessions are recorded in a
local SQLite store; the generated documents themselves are never stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if flagAddr != "" {
			cfg.ServerAddr = flagAddr
		}

		db, err := database.Init(database.Config{Path: cfg.DatabasePath})
		if err != nil {
			// The API is still useful without session history.
			slog.Warn("session store unavailable", "error", err)
			db = nil
		}

		svcs, err := services.NewServices(ctx, cfg, db)
		if err != nil {
			return err
		}

		var sessions server.SessionLister
		if svcs.Sessions != nil {
			sessions = svcs.Sessions
		}
		srv := server.New(cfg, svcs.Readme, sessions)

		slog.Info("starting server",
			"addr", cfg.ServerAddr,
			"provider", cfg.Provider,
			"backend_configured", cfg.HasBackend())
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address, defaults to :8000")
	rootCmd.AddCommand(serveCmd)
}
