// Package store manages the persisted list of project groups.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"projdeck/internal/config"
)

// Color sentinels. Any other value is a predefined color name or a CSS/hex
// value, passed through to the UI as-is.
const (
	// ColorAuto means "inherit the workspace color".
	ColorAuto = "auto"
	// ColorRandom means "pick a random palette color".
	ColorRandom = "random"
)

// Project is a single openable project location.
type Project struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	IsGitRepo bool   `json:"isGitRepo" yaml:"isGitRepo"`
}

// Group is a named, ordered collection of projects. An empty GroupName means
// the default/unnamed group.
type Group struct {
	ID        string    `json:"id" yaml:"id"`
	GroupName string    `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	Collapsed bool      `json:"collapsed" yaml:"collapsed"`
	Projects  []Project `json:"projects" yaml:"projects"`
}

// DisplayName returns a user-facing name for the group.
func (g *Group) DisplayName() string {
	if g.GroupName != "" {
		return g.GroupName
	}
	return "Projects"
}

// Store is the JSON-backed project list. All mutations persist immediately
// via Save; reads and writes are read-modify-write over one document with
// last-write-wins semantics.
type Store struct {
	path   string
	Groups []Group
}

// Path override vars, replaceable in tests.
var (
	statePathFunc    = defaultStatePath
	settingsPathFunc = defaultSettingsPath
)

func defaultStatePath() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "projects.json")
}

func defaultSettingsPath() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings-projects.json")
}

// BackendPath returns the file path for a storage backend.
func BackendPath(backend config.StorageBackend) (string, error) {
	var path string
	switch backend {
	case config.BackendSettings:
		path = settingsPathFunc()
	default:
		path = statePathFunc()
	}
	if path == "" {
		return "", fmt.Errorf("cannot determine storage path for backend %q", backend)
	}
	return path, nil
}

// Open loads the project list from the configured backend. A missing file
// yields an empty store. A legacy flat project array is wrapped into a single
// default group and written back.
func Open(backend config.StorageBackend) (*Store, error) {
	path, err := BackendPath(backend)
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath loads the project list from an explicit file path.
func OpenPath(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read project list: %w", err)
	}

	groups, migrated, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	s.Groups = groups

	// Persist the migrated grouped form so migration runs once.
	if migrated {
		if err := s.Save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// decodeDocument parses a persisted document, migrating the legacy flat
// project array (pre-grouping schema) into a single default group.
// Running it on already-grouped data is a no-op, so migration is idempotent.
func decodeDocument(data []byte) (groups []Group, migrated bool, err error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, false, nil
	}

	// A grouped document also decodes into []Project (with empty paths, since
	// groups carry no path field), so the legacy branch is taken only when
	// every entry actually looks like a project.
	var projects []Project
	if err := json.Unmarshal(data, &projects); err == nil && isFlatProjectList(projects) {
		group := Group{
			ID:       NewGroupID(""),
			Projects: projects,
		}
		return []Group{group}, true, nil
	}

	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, false, fmt.Errorf("failed to parse project list: %w", err)
	}
	// A null or omitted projects member is an empty group.
	for i := range groups {
		if groups[i].Projects == nil {
			groups[i].Projects = []Project{}
		}
	}
	return groups, false, nil
}

// isFlatProjectList reports whether a []Project decoding came from the legacy
// flat schema. Projects persist with a non-empty path, so a single empty path
// marks the document as grouped.
func isFlatProjectList(projects []Project) bool {
	if len(projects) == 0 {
		return false
	}
	for _, p := range projects {
		if p.Path == "" {
			return false
		}
	}
	return true
}

// Save writes the group list to the backing file, creating the parent
// directory when needed.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("store has no backing path")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	data, err := json.MarshalIndent(s.Groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project list: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project list: %w", err)
	}
	return nil
}

// Migrate copies the project list from one backend to the other. It is
// idempotent: when the target already has data, nothing is copied and the
// source is left intact.
func Migrate(from, to config.StorageBackend) (copied bool, err error) {
	if from == to {
		return false, nil
	}

	target, err := Open(to)
	if err != nil {
		return false, err
	}
	if len(target.Groups) > 0 {
		return false, nil
	}

	source, err := Open(from)
	if err != nil {
		return false, err
	}
	if len(source.Groups) == 0 {
		return false, nil
	}

	target.Groups = source.Groups
	if err := target.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// NewProjectID generates an opaque unique id from the project name and the
// current time.
func NewProjectID(name string) string {
	return newID(name, "project")
}

// NewGroupID generates an opaque unique id from the group name and the
// current time.
func NewGroupID(name string) string {
	return newID(name, "group")
}

func newID(name, fallback string) string {
	slug := slugify(name)
	if slug == "" {
		slug = fallback
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return slug + "-" + stamp + "-" + uuid.NewString()[:8]
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// SanitizeName strips markup and control characters from a display name.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		switch r {
		case '<', '>', '`', '*', '_', '~', '#', '[', ']':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
