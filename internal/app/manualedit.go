package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"projdeck/internal/store"
)

// ManualEdit is an in-flight bulk edit of the project list. The store is not
// touched until Apply validates the edited document.
type ManualEdit struct {
	// Path of the temp file handed to the editor.
	Path string

	original []byte
	app      *App
}

// BeginManualEdit exports the current project list to a temp JSON file for
// external editing.
func (a *App) BeginManualEdit() (*ManualEdit, error) {
	data, err := json.MarshalIndent(a.Store.Groups, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export project list: %w", err)
	}
	data = append(data, '\n')

	f, err := os.CreateTemp("", "projdeck-edit-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	return &ManualEdit{Path: f.Name(), original: data, app: a}, nil
}

// Apply reads the edited file, validates it, and replaces the store contents.
// An unchanged file is treated as a cancellation. Validation failures leave
// the store untouched and report every issue found.
func (m *ManualEdit) Apply() error {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return fmt.Errorf("failed to read edited file: %w", err)
	}

	if bytes.Equal(data, m.original) {
		return ErrCancelled
	}

	groups, result, err := store.ParseDocument(data)
	if err != nil {
		return fmt.Errorf("edited file is not valid JSON: %w", err)
	}
	if !result.OK() {
		return fmt.Errorf("edited file rejected:\n%s", result.Error())
	}
	return m.app.Store.Replace(groups)
}

// Cleanup removes the temp file.
func (m *ManualEdit) Cleanup() {
	os.Remove(m.Path)
}

// EditProjectList runs the full blocking manual-edit cycle: export, launch
// the configured editor attached to the terminal, validate, apply. Used by
// the CLI path; the TUI suspends itself and drives the same pieces.
func (a *App) EditProjectList(ctx context.Context) error {
	edit, err := a.BeginManualEdit()
	if err != nil {
		return err
	}
	defer edit.Cleanup()

	parts := EditorCommand()
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured; set $VISUAL or $EDITOR")
	}

	args := append(parts[1:], edit.Path)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	return edit.Apply()
}

// GetEditor returns the configured editor from environment variables.
func GetEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

// EditorCommand returns the parsed editor command (program and args). GUI
// editors get a --wait flag so the launcher blocks until the edited file is
// closed; without it the process forks and exits before the user saves, and
// the edit reads back as unchanged.
func EditorCommand() []string {
	parts := parseEditorCommand(GetEditor())
	if len(parts) == 0 {
		return parts
	}
	if IsGUIEditor(parts[0]) && !hasWaitFlag(parts) {
		parts = append(parts, "--wait")
	}
	return parts
}

func hasWaitFlag(parts []string) bool {
	for _, p := range parts[1:] {
		if p == "--wait" || p == "-w" {
			return true
		}
	}
	return false
}

// IsGUIEditor determines if an editor is a GUI editor (doesn't need terminal).
func IsGUIEditor(editorPath string) bool {
	// Check user override
	if val := os.Getenv("PROJDECK_EDITOR_IS_GUI"); val == "1" || val == "true" {
		return true
	}

	// SSH detection (GUI won't work over SSH)
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" {
		return false
	}

	guiEditors := []string{
		"code", "code-insiders", "zed", "subl", "sublime", "sublime_text",
		"atom", "gedit", "gnome-text-editor", "kwrite", "kate", "mousepad",
		"xed", "pluma", "bbedit", "textmate", "textedit", "macvim", "gvim",
	}

	terminalEditors := []string{
		"vim", "vi", "nvim", "nano", "emacs", "emacsclient", "ed", "ex",
		"joe", "jed", "pico", "micro", "helix", "hx", "kakoune", "kak",
	}

	editorName := strings.ToLower(filepath.Base(editorPath))

	for _, gui := range guiEditors {
		if strings.Contains(editorName, gui) {
			return true
		}
	}
	for _, term := range terminalEditors {
		if strings.Contains(editorName, term) {
			return false
		}
	}

	// Default to terminal editor
	return false
}

// parseEditorCommand parses an editor command string into program and arguments.
// Handles simple shell-like quoting (single and double quotes).
func parseEditorCommand(cmd string) []string {
	var parts []string
	var current []byte
	var inSingleQuote, inDoubleQuote bool

	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		switch {
		case c == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
		case c == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
		case c == ' ' && !inSingleQuote && !inDoubleQuote:
			if len(current) > 0 {
				parts = append(parts, string(current))
				current = nil
			}
		default:
			current = append(current, c)
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
