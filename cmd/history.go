package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hankchat/hanktui/internal/config"
	"github.com/hankchat/hanktui/internal/storage/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage locally saved chat history",
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the locally saved transcript for the configured server",
	Long: `Delete the locally saved transcript for the configured server.

Only the local history database is touched; the server-side history is
cleared from inside the app with ctrl+l.`,
	RunE: runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sqlite.NewDB(config.DefaultHistoryDBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	serverURL := cfg.ServerURL()
	if err := db.Messages().DeleteAll(serverURL); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	cmd.Printf("Cleared saved history for %s\n", serverURL)
	return nil
}
