// Package app provides the main application logic for projdeck.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"projdeck/internal/config"
	"projdeck/internal/remote"
	"projdeck/internal/store"
)

// OpenMode selects how a project is opened in the editor.
type OpenMode int

const (
	// ModeDefault opens using the configured default window behavior.
	ModeDefault OpenMode = iota
	// ModeNewWindow forces a new editor window.
	ModeNewWindow
	// ModeAddToWorkspace adds the folder to the current workspace.
	ModeAddToWorkspace
)

// EditorClient is the command surface the app dispatches opens to.
type EditorClient interface {
	OpenFolder(ctx context.Context, path string, newWindow bool) error
	OpenFolderURI(ctx context.Context, uri string, newWindow bool) error
	AddToWorkspace(ctx context.Context, path string) error
}

// ErrCancelled marks a user-dismissed prompt or an unchanged manual edit.
// It is a control path, not a failure: callers abort silently with no
// partial writes.
var ErrCancelled = errors.New("cancelled")

// ErrNoWorkspace is reported when a relative project path cannot be resolved
// because no workspace root is available.
var ErrNoWorkspace = errors.New("no workspace open to resolve relative path against")

// App wires configuration, the project store, and the editor client.
type App struct {
	Config *config.Config
	Store  *store.Store
	Editor EditorClient

	// WorkspaceRoot anchors relative project paths. Empty means no
	// workspace is open.
	WorkspaceRoot string
}

// NewApp creates an App. The workspace root comes from config when set,
// otherwise from the current directory.
func NewApp(cfg *config.Config, st *store.Store, ed EditorClient) *App {
	root := cfg.Open.WorkspaceRoot
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		}
	}
	return &App{
		Config:        cfg,
		Store:         st,
		Editor:        ed,
		WorkspaceRoot: root,
	}
}

// ResolveLocalPath expands and absolutizes a local project path. Relative
// paths resolve against the workspace root; with no root available the
// operation fails rather than guessing.
func (a *App) ResolveLocalPath(path string) (string, error) {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if a.WorkspaceRoot == "" {
		return "", fmt.Errorf("cannot resolve %q: %w", path, ErrNoWorkspace)
	}
	return filepath.Clean(filepath.Join(a.WorkspaceRoot, path)), nil
}

// expandHome expands a leading ~ to the user home directory.
func expandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// OpenProject classifies the project path and dispatches exactly one editor
// command for the requested mode.
func (a *App) OpenProject(ctx context.Context, project *store.Project, mode OpenMode) error {
	remoteType := remote.TypeOf(project.Path)

	if mode == ModeAddToWorkspace {
		if remoteType != remote.None {
			return fmt.Errorf("%s is a %s project; only local folders can be added to the workspace",
				project.Name, remoteType)
		}
		path, err := a.ResolveLocalPath(project.Path)
		if err != nil {
			return err
		}
		return a.Editor.AddToWorkspace(ctx, path)
	}

	newWindow := mode == ModeNewWindow ||
		(mode == ModeDefault && a.Config.Open.DefaultMode == config.OpenModeNewWindow)

	if remoteType == remote.None {
		path, err := a.ResolveLocalPath(project.Path)
		if err != nil {
			return err
		}
		return a.Editor.OpenFolder(ctx, path, newWindow)
	}

	uri, err := remote.FolderURI(project.Path)
	if err != nil {
		return err
	}
	return a.Editor.OpenFolderURI(ctx, uri, newWindow)
}

// OpenByName looks up a project by display name and opens it.
func (a *App) OpenByName(ctx context.Context, name string, mode OpenMode) error {
	project, err := a.Store.ProjectByName(name)
	if err != nil {
		return err
	}
	return a.OpenProject(ctx, project, mode)
}

// AddProjectFromPath registers a path as a project in the default group,
// deriving the name from the folder basename and detecting git state for
// local paths.
func (a *App) AddProjectFromPath(path, groupName string) (*store.Project, error) {
	if path == "" {
		return nil, fmt.Errorf("project path must not be empty")
	}

	var group *store.Group
	var err error
	if groupName == "" {
		group, err = a.Store.DefaultGroup()
	} else {
		group, err = a.Store.GroupByName(groupName)
		if errors.Is(err, store.ErrNotFound) {
			group, err = a.Store.AddGroup(groupName)
		}
	}
	if err != nil {
		return nil, err
	}

	name := projectNameFromPath(path)
	project, err := a.Store.AddProject(group.ID, name, path, "")
	if err != nil {
		return nil, err
	}

	if remote.TypeOf(path) == remote.None {
		if abs, err := a.ResolveLocalPath(path); err == nil && store.DetectGitRepo(abs) {
			project.IsGitRepo = true
			if err := a.Store.Save(); err != nil {
				return nil, err
			}
		}
	}
	return project, nil
}

// projectNameFromPath derives a display name from the last path segment of a
// local path or remote URI.
func projectNameFromPath(path string) string {
	display := remote.DisplayPath(path)
	display = strings.TrimRight(display, "/\\")
	if idx := strings.LastIndexAny(display, "/\\"); idx >= 0 {
		display = display[idx+1:]
	}
	if display == "" {
		return path
	}
	return display
}

// MoveProject shifts a project by delta positions within its group. Moves
// past either end clamp to the boundary.
func (a *App) MoveProject(projectID string, delta int) error {
	for g := range a.Store.Groups {
		group := &a.Store.Groups[g]
		for p := range group.Projects {
			if group.Projects[p].ID != projectID {
				continue
			}
			target := p + delta
			if target < 0 {
				target = 0
			}
			if target >= len(group.Projects) {
				target = len(group.Projects) - 1
			}
			if target == p {
				return nil
			}
			order := make([]string, 0, len(group.Projects))
			for _, proj := range group.Projects {
				order = append(order, proj.ID)
			}
			order = append(order[:p], order[p+1:]...)
			order = append(order[:target], append([]string{projectID}, order[target:]...)...)
			return a.Store.Reorder(group.ID, order)
		}
	}
	return fmt.Errorf("project %q: %w", projectID, store.ErrNotFound)
}

// RefreshGitFlags re-detects git state for all local projects.
func (a *App) RefreshGitFlags() error {
	return a.Store.RefreshGitFlags(a.ResolveLocalPath)
}
