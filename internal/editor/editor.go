// Package editor dispatches open commands to the VS Code CLI.
package editor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// codeCommand is the VS Code CLI binary name.
const codeCommand = "code"

// commandRunner executes the CLI and returns its combined output. Replaced
// in tests.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client invokes the VS Code CLI. Every invocation runs under the client
// timeout.
type Client struct {
	binary  string
	timeout time.Duration
	run     commandRunner
}

// NewClient creates a client for the `code` CLI with the given timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		binary:  findCode(),
		timeout: timeout,
		run:     runCommand,
	}
}

// findCode locates the VS Code CLI: PATH first, then common Windows install
// locations.
func findCode() string {
	if path, err := exec.LookPath(codeCommand); err == nil {
		return path
	}

	candidates := []string{
		`C:\Program Files\Microsoft VS Code\bin\code.cmd`,
		`C:\Program Files (x86)\Microsoft VS Code\bin\code.cmd`,
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c
		}
	}
	return codeCommand
}

// IsInstalled checks if the VS Code CLI is installed and accessible.
func (c *Client) IsInstalled() bool {
	return exec.Command(c.binary, "--version").Run() == nil
}

// Version returns the installed VS Code version.
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, err := c.run(ctx, c.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to get editor version: %w", err)
	}
	lines := strings.SplitN(strings.TrimSpace(string(output)), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}

// commandError folds the exec error and any CLI output into one message.
// The cause is kept even when the CLI printed nothing (missing binary,
// context deadline).
func commandError(action string, err error, output []byte) error {
	msg := strings.TrimSpace(string(output))
	if msg == "" {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%s: %w: %s", action, err, msg)
}

// windowFlag maps the new-window choice to the CLI flag: -n forces a new
// window, -r reuses the last active one.
func windowFlag(newWindow bool) string {
	if newWindow {
		return "-n"
	}
	return "-r"
}

// OpenFolder opens a local folder path.
func (c *Client) OpenFolder(ctx context.Context, path string, newWindow bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if output, err := c.run(ctx, c.binary, windowFlag(newWindow), path); err != nil {
		return commandError("editor open failed", err, output)
	}
	return nil
}

// OpenFolderURI opens a remote folder URI (vscode-remote://...).
func (c *Client) OpenFolderURI(ctx context.Context, uri string, newWindow bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if output, err := c.run(ctx, c.binary, windowFlag(newWindow), "--folder-uri", uri); err != nil {
		return commandError("editor open failed", err, output)
	}
	return nil
}

// AddToWorkspace adds a local folder to the last active window's workspace.
func (c *Client) AddToWorkspace(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if output, err := c.run(ctx, c.binary, "--add", path); err != nil {
		return commandError("editor add-to-workspace failed", err, output)
	}
	return nil
}
