package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"projdeck/internal/app"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the project list in your editor",
	Long: `Export the project list to a temp JSON file, open it in $VISUAL/$EDITOR,
validate the result, and save it back.

Structural problems (missing ids, names, or paths) are all reported and the
stored list is left untouched. Exiting without changes cancels the edit.`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	err = a.EditProjectList(context.Background())
	if errors.Is(err, app.ErrCancelled) {
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("manual edit failed")
		return err
	}
	log.Info().Msg("project list edited")
	fmt.Println("Project list updated.")
	return nil
}
