package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"projdeck/internal/config"
)

// withBackendPaths temporarily overrides the backend path funcs for a test.
func withBackendPaths(t *testing.T, statePath, settingsPath string) {
	t.Helper()
	origState, origSettings := statePathFunc, settingsPathFunc
	statePathFunc = func() string { return statePath }
	settingsPathFunc = func() string { return settingsPath }
	t.Cleanup(func() {
		statePathFunc = origState
		settingsPathFunc = origSettings
	})
}

func sampleGroups() []Group {
	return []Group{
		{
			ID:        "grp-work",
			GroupName: "Work",
			Projects: []Project{
				{ID: "p-api", Name: "api", Path: "/home/user/work/api", IsGitRepo: true},
				{ID: "p-web", Name: "web", Path: "/home/user/work/web", Color: "#ff8800"},
			},
		},
		{
			ID:        "grp-default",
			Collapsed: true,
			Projects: []Project{
				{ID: "p-lab", Name: "lab", Path: "vscode-remote://ssh-remote+devbox/srv/lab"},
			},
		},
	}
}

func TestOpenPath_Missing(t *testing.T) {
	s, err := OpenPath(filepath.Join(t.TempDir(), "projects.json"))
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if len(s.Groups) != 0 {
		t.Errorf("Groups = %v, want empty", s.Groups)
	}
}

func TestSaveAndOpen_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "projects.json")

	s := &Store{path: path, Groups: sampleGroups()}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if !reflect.DeepEqual(reloaded.Groups, s.Groups) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", reloaded.Groups, s.Groups)
	}
}

func TestOpenPath_LegacyFlatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")

	legacy := []Project{
		{ID: "p-one", Name: "one", Path: "/tmp/one"},
		{ID: "p-two", Name: "two", Path: "/tmp/two"},
	}
	data, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if len(s.Groups) != 1 {
		t.Fatalf("Groups = %d, want 1 default group", len(s.Groups))
	}
	group := s.Groups[0]
	if group.GroupName != "" {
		t.Errorf("GroupName = %q, want unnamed default group", group.GroupName)
	}
	if group.ID == "" {
		t.Error("migrated group has no id")
	}
	if len(group.Projects) != 2 || group.Projects[0].ID != "p-one" || group.Projects[1].ID != "p-two" {
		t.Errorf("Projects = %+v, want legacy projects in order", group.Projects)
	}

	// Opening again must be a no-op: same groups, same ids.
	again, err := OpenPath(path)
	if err != nil {
		t.Fatalf("second OpenPath() error = %v", err)
	}
	if !reflect.DeepEqual(again.Groups, s.Groups) {
		t.Errorf("legacy migration not idempotent:\ngot  %+v\nwant %+v", again.Groups, s.Groups)
	}
}

func TestOpenPath_NullProjectsGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")

	// A group with a null (or omitted) projects member must stay a group,
	// not be reparsed as the legacy flat schema.
	doc := `[
  {"id": "grp-empty", "groupName": "Work", "projects": null},
  {"id": "grp-lab", "projects": [{"id": "p-api", "name": "api", "path": "/srv/api", "isGitRepo": false}]}
]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if len(s.Groups) != 2 {
		t.Fatalf("Groups = %+v, want 2 groups", s.Groups)
	}
	if s.Groups[0].ID != "grp-empty" || s.Groups[0].Projects == nil || len(s.Groups[0].Projects) != 0 {
		t.Errorf("group 0 = %+v, want empty Work group", s.Groups[0])
	}
	if len(s.Groups[1].Projects) != 1 || s.Groups[1].Projects[0].Name != "api" {
		t.Errorf("group 1 = %+v, want the api project preserved", s.Groups[1])
	}

	// Not a migration: the file must not be rewritten.
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != doc {
		t.Error("OpenPath() rewrote a grouped document")
	}
}

func TestOpenPath_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if len(s.Groups) != 0 {
		t.Errorf("Groups = %v, want empty", s.Groups)
	}
}

func TestOpenPath_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenPath(path); err == nil {
		t.Error("OpenPath() = nil error for malformed JSON, want error")
	}
}

func TestMigrate(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "projects.json")
	settingsPath := filepath.Join(tmpDir, "settings-projects.json")
	withBackendPaths(t, statePath, settingsPath)

	source := &Store{path: statePath, Groups: sampleGroups()}
	if err := source.Save(); err != nil {
		t.Fatal(err)
	}

	copied, err := Migrate(config.BackendState, config.BackendSettings)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if !copied {
		t.Error("Migrate() copied = false, want true")
	}

	target, err := OpenPath(settingsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(target.Groups, source.Groups) {
		t.Errorf("migrated data mismatch:\ngot  %+v\nwant %+v", target.Groups, source.Groups)
	}

	// Source must be left intact.
	original, err := OpenPath(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(original.Groups, source.Groups) {
		t.Error("Migrate() modified the source backend")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "projects.json")
	settingsPath := filepath.Join(tmpDir, "settings-projects.json")
	withBackendPaths(t, statePath, settingsPath)

	source := &Store{path: statePath, Groups: sampleGroups()}
	if err := source.Save(); err != nil {
		t.Fatal(err)
	}

	if _, err := Migrate(config.BackendState, config.BackendSettings); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	afterFirst, err := OpenPath(settingsPath)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the source; a second migration must not clobber the target.
	source.Groups[0].Projects = source.Groups[0].Projects[:1]
	if err := source.Save(); err != nil {
		t.Fatal(err)
	}

	copied, err := Migrate(config.BackendState, config.BackendSettings)
	if err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	if copied {
		t.Error("second Migrate() copied = true, want false")
	}

	afterSecond, err := OpenPath(settingsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(afterSecond.Groups, afterFirst.Groups) {
		t.Error("second Migrate() changed the target backend")
	}
}

func TestMigrate_SameBackend(t *testing.T) {
	withBackendPaths(t, filepath.Join(t.TempDir(), "a.json"), "")

	copied, err := Migrate(config.BackendState, config.BackendState)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if copied {
		t.Error("Migrate() between identical backends copied data")
	}
}

func TestMigrate_EmptySource(t *testing.T) {
	tmpDir := t.TempDir()
	settingsPath := filepath.Join(tmpDir, "settings-projects.json")
	withBackendPaths(t, filepath.Join(tmpDir, "projects.json"), settingsPath)

	copied, err := Migrate(config.BackendState, config.BackendSettings)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if copied {
		t.Error("Migrate() with empty source copied data")
	}
	if _, err := os.Stat(settingsPath); !os.IsNotExist(err) {
		t.Error("Migrate() with empty source created the target file")
	}
}

func TestNewProjectID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewProjectID("my project")
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestNewProjectID_EmptyName(t *testing.T) {
	id := NewProjectID("")
	if id == "" {
		t.Fatal("NewProjectID(\"\") is empty")
	}
	if id[0] == '-' {
		t.Errorf("id %q starts with separator", id)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain name", "plain name"},
		{"<b>bold</b>", "bbold/b"},
		{"has `ticks` and *stars*", "has ticks and stars"},
		{"tab\there", "tabhere"},
		{"  padded  ", "padded"},
		{"[link] #tag ~x_", "link tag x"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
