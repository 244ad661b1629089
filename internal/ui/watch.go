package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// StoreWatcher reloads the panel when the store file changes on disk.
// Watching the parent directory survives editors that replace the file.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewStoreWatcher watches the store file at path.
func NewStoreWatcher(path string) (*StoreWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &StoreWatcher{watcher: watcher, path: path}, nil
}

// WaitCmd blocks until the store file is written or replaced, then delivers
// a StoreChangedMsg. Re-issue it after each message to keep watching.
func (w *StoreWatcher) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return StoreChangedMsg{}
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// Close stops the watcher.
func (w *StoreWatcher) Close() error {
	return w.watcher.Close()
}
