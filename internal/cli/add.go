package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addGroupName string

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a project to the list",
	Long: `Add a project to the list.

The path may be a local folder or a remote locator (vscode-remote:// URI or
a \\wsl$\ UNC path). The display name is derived from the last path segment.

Examples:
  projdeck add ~/src/api
  projdeck add vscode-remote://ssh-remote+devbox/srv/app --group Work`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addGroupName, "group", "g", "", "group to add the project to (created if missing)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	project, err := a.AddProjectFromPath(args[0], addGroupName)
	if err != nil {
		log.Error().Err(err).Str("path", args[0]).Msg("add failed")
		return err
	}
	log.Info().Str("project", project.Name).Str("path", project.Path).Msg("added")
	fmt.Printf("Added %s (%s)\n", project.Name, project.Path)
	return nil
}
