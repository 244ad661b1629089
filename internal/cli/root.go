// Package cli provides the projdeck command surface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"projdeck/internal/app"
	"projdeck/internal/config"
	"projdeck/internal/editor"
	"projdeck/internal/logging"
	"projdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "projdeck",
	Short: "Project switcher panel for VS Code",
	Long: `projdeck keeps a grouped list of local and remote projects and opens
them in VS Code with the right remote URI.

Running projdeck without arguments starts the interactive panel.`,
	RunE: runPanel,
}

// log is the application logger, set up in Execute before any command runs.
var log zerolog.Logger

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// setupApp loads config, logging, the store, and the editor client. The
// returned cleanup closes the log file.
func setupApp() (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := logging.Setup(cfg.Log.Enabled)
	if err != nil {
		// Logging failures must not block the tool.
		fmt.Fprintf(os.Stderr, "warning: log file unavailable: %v\n", err)
	}
	log = logger

	st, err := store.Open(cfg.Storage.Backend)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("failed to open project store: %w", err)
	}

	ed := editor.NewClient(15 * time.Second)
	return app.NewApp(cfg, st, ed), closeLog, nil
}
