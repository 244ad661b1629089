package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"projdeck/internal/remote"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects by group",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if a.Store.ProjectCount() == 0 && len(a.Store.Groups) == 0 {
		fmt.Println("No projects. Use `projdeck add <path>` to add one.")
		return nil
	}

	for _, group := range a.Store.Groups {
		fmt.Printf("%s (%d)\n", group.DisplayName(), len(group.Projects))
		for _, project := range group.Projects {
			marker := " "
			if project.IsGitRepo {
				marker = "±"
			}
			badge := ""
			if t := remote.TypeOf(project.Path); t != remote.None {
				badge = fmt.Sprintf(" [%s]", t)
			}
			fmt.Printf("  %s %s%s  %s\n", marker, project.Name, badge, remote.DisplayPath(project.Path))
		}
	}
	return nil
}
