package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupRemoveForce bool

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage project groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupAdd,
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a group and all its projects",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupRemove,
}

func init() {
	groupRemoveCmd.Flags().BoolVarP(&groupRemoveForce, "force", "f", false, "skip the confirmation prompt")
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRemoveCmd)
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	group, err := a.Store.AddGroup(args[0])
	if err != nil {
		return err
	}
	log.Info().Str("group", group.GroupName).Msg("group added")
	fmt.Printf("Added group %s\n", group.DisplayName())
	return nil
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	group, err := a.Store.GroupByName(args[0])
	if err != nil {
		return err
	}

	if !groupRemoveForce && a.Config.Confirmation.Remove {
		prompt := fmt.Sprintf("Remove group %s and its %d projects?",
			group.DisplayName(), len(group.Projects))
		if !confirm(prompt) {
			return nil
		}
	}

	if err := a.Store.RemoveGroup(group.ID); err != nil {
		return err
	}
	log.Info().Str("group", group.GroupName).Msg("group removed")
	fmt.Printf("Removed group %s\n", group.DisplayName())
	return nil
}
