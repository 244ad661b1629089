package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return &Store{path: filepath.Join(t.TempDir(), "projects.json")}
}

func TestAddGroup(t *testing.T) {
	s := newTestStore(t)

	group, err := s.AddGroup("Side *Projects*")
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}
	if group.GroupName != "Side Projects" {
		t.Errorf("GroupName = %q, want sanitized %q", group.GroupName, "Side Projects")
	}
	if group.ID == "" {
		t.Error("group has no id")
	}
	if group.Projects == nil {
		t.Error("group has nil projects slice")
	}

	// Persisted immediately
	reloaded, err := OpenPath(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Groups) != 1 || reloaded.Groups[0].ID != group.ID {
		t.Errorf("reloaded groups = %+v, want the added group", reloaded.Groups)
	}
}

func TestRemoveGroup(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if err := s.RemoveGroup("grp-work"); err != nil {
		t.Fatalf("RemoveGroup() error = %v", err)
	}
	if len(s.Groups) != 1 || s.Groups[0].ID != "grp-default" {
		t.Errorf("Groups = %+v, want only grp-default", s.Groups)
	}

	err := s.RemoveGroup("grp-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveGroup(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDefaultGroup(t *testing.T) {
	s := newTestStore(t)
	s.Groups = []Group{{ID: "grp-work", GroupName: "Work", Projects: []Project{}}}

	created, err := s.DefaultGroup()
	if err != nil {
		t.Fatalf("DefaultGroup() error = %v", err)
	}
	if created.GroupName != "" {
		t.Errorf("GroupName = %q, want unnamed", created.GroupName)
	}

	// A second call returns the same group, not a new one.
	again, err := s.DefaultGroup()
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != created.ID {
		t.Errorf("DefaultGroup() returned a different group: %q != %q", again.ID, created.ID)
	}
	if len(s.Groups) != 2 {
		t.Errorf("Groups = %d, want 2", len(s.Groups))
	}
}

func TestAddProject(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	project, err := s.AddProject("grp-work", "  <new> tool ", "/home/user/tool", "teal")
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if project.Name != "new tool" {
		t.Errorf("Name = %q, want sanitized %q", project.Name, "new tool")
	}
	if project.Color != "teal" {
		t.Errorf("Color = %q, want teal", project.Color)
	}

	group, _ := s.Group("grp-work")
	if len(group.Projects) != 3 || group.Projects[2].ID != project.ID {
		t.Errorf("project not appended to group: %+v", group.Projects)
	}
}

func TestAddProject_EmptyPath(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if _, err := s.AddProject("grp-work", "name", "", ""); err == nil {
		t.Error("AddProject() with empty path = nil error, want error")
	}
}

func TestRemoveProject(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if err := s.RemoveProject("p-web"); err != nil {
		t.Fatalf("RemoveProject() error = %v", err)
	}
	group, _ := s.Group("grp-work")
	if len(group.Projects) != 1 || group.Projects[0].ID != "p-api" {
		t.Errorf("Projects = %+v, want only p-api", group.Projects)
	}

	err := s.RemoveProject("p-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveProject(missing) error = %v, want ErrNotFound", err)
	}
}

func TestProjectByName(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	project, err := s.ProjectByName("lab")
	if err != nil {
		t.Fatalf("ProjectByName() error = %v", err)
	}
	if project.ID != "p-lab" {
		t.Errorf("ID = %q, want p-lab", project.ID)
	}

	if _, err := s.ProjectByName("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ProjectByName(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRenameProject(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if err := s.RenameProject("p-api", "api v2"); err != nil {
		t.Fatalf("RenameProject() error = %v", err)
	}
	project, _ := s.Project("p-api")
	if project.Name != "api v2" {
		t.Errorf("Name = %q, want %q", project.Name, "api v2")
	}

	if err := s.RenameProject("p-api", "  <> "); err == nil {
		t.Error("RenameProject() to empty sanitized name = nil error, want error")
	}
}

func TestRenameGroup(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if err := s.RenameGroup("grp-work", "Client Work"); err != nil {
		t.Fatalf("RenameGroup() error = %v", err)
	}
	group, _ := s.Group("grp-work")
	if group.GroupName != "Client Work" {
		t.Errorf("GroupName = %q, want %q", group.GroupName, "Client Work")
	}

	if err := s.RenameGroup("grp-work", " <> "); err == nil {
		t.Error("RenameGroup() to empty sanitized name = nil error, want error")
	}
}

func TestToggleCollapsed(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()

	if err := s.ToggleCollapsed("grp-work"); err != nil {
		t.Fatalf("ToggleCollapsed() error = %v", err)
	}
	group, _ := s.Group("grp-work")
	if !group.Collapsed {
		t.Error("Collapsed = false after toggle, want true")
	}
}

func TestReorder(t *testing.T) {
	s := newTestStore(t)
	s.Groups = []Group{
		{
			ID: "grp",
			Projects: []Project{
				{ID: "a", Name: "a", Path: "/a"},
				{ID: "b", Name: "b", Path: "/b"},
				{ID: "c", Name: "c", Path: "/c"},
			},
		},
	}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{
			name:  "full reversal",
			order: []string{"c", "b", "a"},
			want:  []string{"c", "b", "a"},
		},
		{
			name:  "unknown ids dropped",
			order: []string{"b", "zz", "a", "c"},
			want:  []string{"b", "a", "c"},
		},
		{
			name:  "omitted projects dropped",
			order: []string{"c", "a"},
			want:  []string{"c", "a"},
		},
		{
			name:  "duplicate ids keep first",
			order: []string{"a", "a", "c"},
			want:  []string{"a", "c"},
		},
		{
			name:  "empty order empties group",
			order: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Groups[0].Projects = []Project{
				{ID: "a", Name: "a", Path: "/a"},
				{ID: "b", Name: "b", Path: "/b"},
				{ID: "c", Name: "c", Path: "/c"},
			}
			if err := s.Reorder("grp", tt.order); err != nil {
				t.Fatalf("Reorder() error = %v", err)
			}
			got := make([]string, 0, len(s.Groups[0].Projects))
			for _, p := range s.Groups[0].Projects {
				got = append(got, p.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestProjectCount(t *testing.T) {
	s := newTestStore(t)
	s.Groups = sampleGroups()
	if got := s.ProjectCount(); got != 3 {
		t.Errorf("ProjectCount() = %d, want 3", got)
	}
}
