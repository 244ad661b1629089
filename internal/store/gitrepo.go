package store

import (
	git "github.com/go-git/go-git/v5"

	"projdeck/internal/remote"
)

// DetectGitRepo reports whether a local path sits inside a git repository.
// Detection is best-effort: remote paths, unreadable directories, and any
// open failure read as false.
func DetectGitRepo(path string) bool {
	if remote.TypeOf(path) != remote.None {
		return false
	}
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// RefreshGitFlags re-detects IsGitRepo for every local project, persisting
// only when something changed. The resolve function maps stored paths to
// absolute local paths; paths it cannot resolve are skipped.
func (s *Store) RefreshGitFlags(resolve func(string) (string, error)) error {
	changed := false
	for g := range s.Groups {
		for p := range s.Groups[g].Projects {
			project := &s.Groups[g].Projects[p]
			if remote.TypeOf(project.Path) != remote.None {
				continue
			}
			abs, err := resolve(project.Path)
			if err != nil {
				continue
			}
			isRepo := DetectGitRepo(abs)
			if isRepo != project.IsGitRepo {
				project.IsGitRepo = isRepo
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return s.Save()
}
