package cli

import (
	"context"
	"fmt"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"projdeck/internal/app"
	"projdeck/internal/store"
	"projdeck/internal/ui"
)

// runPanel starts the interactive panel.
func runPanel(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	model := buildModel(a)

	watcher, err := ui.NewStoreWatcher(a.Store.Path())
	if err == nil {
		model.Watcher = watcher
		defer watcher.Close()
	} else {
		log.Error().Err(err).Msg("store watcher unavailable")
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("panel failed: %w", err)
	}
	return nil
}

// buildModel wires the panel model to the application operations.
func buildModel(a *app.App) ui.Model {
	model := ui.NewModel(ui.GetTheme(string(a.Config.UI.Theme)))
	model.ShowPaths = a.Config.UI.ShowPaths
	model.ConfirmRemove = a.Config.Confirmation.Remove
	model.SetGroups(a.Store.Groups)

	model.OnOpen = func(ctx context.Context, projectID string, action ui.OpenAction) error {
		project, err := a.Store.Project(projectID)
		if err != nil {
			return err
		}
		mode := app.ModeDefault
		switch action {
		case ui.OpenNewWindow:
			mode = app.ModeNewWindow
		case ui.OpenAddToWorkspace:
			mode = app.ModeAddToWorkspace
		}
		if err := a.OpenProject(ctx, project, mode); err != nil {
			log.Error().Err(err).Str("project", project.Name).Msg("open failed")
			return err
		}
		log.Info().Str("project", project.Name).Str("path", project.Path).Msg("opened")
		return nil
	}

	model.OnAddProject = func(groupID, path string) error {
		groupName := ""
		if groupID != "" {
			if group, err := a.Store.Group(groupID); err == nil {
				groupName = group.GroupName
			}
		}
		_, err := a.AddProjectFromPath(path, groupName)
		return err
	}

	model.OnAddGroup = func(name string) error {
		_, err := a.Store.AddGroup(name)
		return err
	}

	model.OnRemoveProject = a.Store.RemoveProject
	model.OnRemoveGroup = a.Store.RemoveGroup
	model.OnRenameProject = a.Store.RenameProject
	model.OnRenameGroup = a.Store.RenameGroup
	model.OnToggleCollapse = a.Store.ToggleCollapsed
	model.OnMoveProject = a.MoveProject

	model.Reload = func() ([]store.Group, error) {
		reloaded, err := store.OpenPath(a.Store.Path())
		if err != nil {
			return nil, err
		}
		a.Store.Groups = reloaded.Groups
		return a.Store.Groups, nil
	}

	model.ColorFor = a.ProjectColor

	model.BeginEdit = func() (*exec.Cmd, func() error, func(), error) {
		edit, err := a.BeginManualEdit()
		if err != nil {
			return nil, nil, nil, err
		}
		parts := app.EditorCommand()
		if len(parts) == 0 {
			edit.Cleanup()
			return nil, nil, nil, fmt.Errorf("no editor configured; set $VISUAL or $EDITOR")
		}
		cmd := exec.Command(parts[0], append(parts[1:], edit.Path)...)
		apply := func() error {
			err := edit.Apply()
			if err == app.ErrCancelled {
				// Unchanged file: silent abort.
				return nil
			}
			return err
		}
		return cmd, apply, edit.Cleanup, nil
	}

	return model
}
