package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a project from the list",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	project, err := a.Store.ProjectByName(args[0])
	if err != nil {
		return err
	}

	if !removeForce && a.Config.Confirmation.Remove {
		if !confirm(fmt.Sprintf("Remove project %s (%s)?", project.Name, project.Path)) {
			return nil
		}
	}

	if err := a.Store.RemoveProject(project.ID); err != nil {
		return err
	}
	log.Info().Str("project", project.Name).Msg("removed")
	fmt.Printf("Removed %s\n", project.Name)
	return nil
}

// confirm asks a yes/no question on the terminal. Anything but an explicit
// yes declines.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
