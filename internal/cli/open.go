package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"projdeck/internal/app"
)

var (
	openNewWindow bool
	openAdd       bool
)

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open a project in the editor",
	Long: `Open a project by display name.

Local folders open directly; SSH, WSL, and container projects open through
the matching vscode-remote:// URI.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVarP(&openNewWindow, "new-window", "n", false, "open in a new editor window")
	openCmd.Flags().BoolVarP(&openAdd, "add", "a", false, "add the folder to the current workspace instead of opening")
}

func runOpen(cmd *cobra.Command, args []string) error {
	if openNewWindow && openAdd {
		return fmt.Errorf("--new-window and --add are mutually exclusive")
	}

	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	mode := app.ModeDefault
	if openNewWindow {
		mode = app.ModeNewWindow
	}
	if openAdd {
		mode = app.ModeAddToWorkspace
	}

	if err := a.OpenByName(context.Background(), args[0], mode); err != nil {
		log.Error().Err(err).Str("project", args[0]).Msg("open failed")
		return err
	}
	log.Info().Str("project", args[0]).Msg("opened")
	return nil
}
