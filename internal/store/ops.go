package store

import (
	"fmt"
)

// ErrNotFound is returned when an id does not match any group or project.
var ErrNotFound = fmt.Errorf("not found")

// AddGroup appends a new group and persists. The name is sanitized; an empty
// name creates the default/unnamed group.
func (s *Store) AddGroup(name string) (*Group, error) {
	name = SanitizeName(name)
	group := Group{
		ID:        NewGroupID(name),
		GroupName: name,
		Projects:  []Project{},
	}
	s.Groups = append(s.Groups, group)
	if err := s.Save(); err != nil {
		return nil, err
	}
	return &s.Groups[len(s.Groups)-1], nil
}

// RemoveGroup deletes a group and all its projects, then persists.
func (s *Store) RemoveGroup(id string) error {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			s.Groups = append(s.Groups[:i], s.Groups[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("group %q: %w", id, ErrNotFound)
}

// Group returns the group with the given id.
func (s *Store) Group(id string) (*Group, error) {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i], nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", id, ErrNotFound)
}

// GroupByName returns the first group with the given display name.
func (s *Store) GroupByName(name string) (*Group, error) {
	for i := range s.Groups {
		if s.Groups[i].GroupName == name {
			return &s.Groups[i], nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
}

// DefaultGroup returns the unnamed group, creating it when absent. The
// created group is persisted.
func (s *Store) DefaultGroup() (*Group, error) {
	for i := range s.Groups {
		if s.Groups[i].GroupName == "" {
			return &s.Groups[i], nil
		}
	}
	return s.AddGroup("")
}

// AddProject appends a project to a group and persists. The name is
// sanitized; the path must be non-empty.
func (s *Store) AddProject(groupID, name, path, color string) (*Project, error) {
	if path == "" {
		return nil, fmt.Errorf("project path must not be empty")
	}
	group, err := s.Group(groupID)
	if err != nil {
		return nil, err
	}

	name = SanitizeName(name)
	project := Project{
		ID:    NewProjectID(name),
		Name:  name,
		Path:  path,
		Color: color,
	}
	group.Projects = append(group.Projects, project)
	if err := s.Save(); err != nil {
		return nil, err
	}
	return &group.Projects[len(group.Projects)-1], nil
}

// RemoveProject deletes a project by id from whichever group holds it, then
// persists.
func (s *Store) RemoveProject(id string) error {
	for g := range s.Groups {
		projects := s.Groups[g].Projects
		for p := range projects {
			if projects[p].ID == id {
				s.Groups[g].Projects = append(projects[:p], projects[p+1:]...)
				return s.Save()
			}
		}
	}
	return fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (*Project, error) {
	for g := range s.Groups {
		for p := range s.Groups[g].Projects {
			if s.Groups[g].Projects[p].ID == id {
				return &s.Groups[g].Projects[p], nil
			}
		}
	}
	return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// ProjectByName returns the first project with the given display name.
func (s *Store) ProjectByName(name string) (*Project, error) {
	for g := range s.Groups {
		for p := range s.Groups[g].Projects {
			if s.Groups[g].Projects[p].Name == name {
				return &s.Groups[g].Projects[p], nil
			}
		}
	}
	return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
}

// RenameProject updates a project's display name and persists.
func (s *Store) RenameProject(id, name string) error {
	project, err := s.Project(id)
	if err != nil {
		return err
	}
	name = SanitizeName(name)
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	project.Name = name
	return s.Save()
}

// RenameGroup updates a group's display name and persists.
func (s *Store) RenameGroup(id, name string) error {
	group, err := s.Group(id)
	if err != nil {
		return err
	}
	name = SanitizeName(name)
	if name == "" {
		return fmt.Errorf("group name must not be empty")
	}
	group.GroupName = name
	return s.Save()
}

// SetProjectColor updates a project's display color and persists.
func (s *Store) SetProjectColor(id, color string) error {
	project, err := s.Project(id)
	if err != nil {
		return err
	}
	project.Color = color
	return s.Save()
}

// ToggleCollapsed flips a group's collapsed state and persists.
func (s *Store) ToggleCollapsed(id string) error {
	group, err := s.Group(id)
	if err != nil {
		return err
	}
	group.Collapsed = !group.Collapsed
	return s.Save()
}

// Reorder rewrites a group's project order to exactly match the supplied id
// order. Ids not present in the group are dropped from the order; projects
// absent from the id list are dropped from the group. Persists the result.
func (s *Store) Reorder(groupID string, projectIDs []string) error {
	group, err := s.Group(groupID)
	if err != nil {
		return err
	}

	byID := make(map[string]Project, len(group.Projects))
	for _, p := range group.Projects {
		byID[p.ID] = p
	}

	reordered := make([]Project, 0, len(projectIDs))
	for _, id := range projectIDs {
		if p, ok := byID[id]; ok {
			reordered = append(reordered, p)
			delete(byID, id) // duplicate ids keep only the first occurrence
		}
	}

	group.Projects = reordered
	return s.Save()
}

// ProjectCount returns the total number of projects across all groups.
func (s *Store) ProjectCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Projects)
	}
	return n
}
