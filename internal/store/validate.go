package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawProject mirrors Project with pointer fields so that absent keys are
// distinguishable from empty values during manual-edit validation.
type rawProject struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	Path      *string `json:"path"`
	Color     *string `json:"color"`
	IsGitRepo *bool   `json:"isGitRepo"`
}

type rawGroup struct {
	ID        *string       `json:"id"`
	GroupName *string       `json:"groupName"`
	Collapsed *bool         `json:"collapsed"`
	Projects  *[]rawProject `json:"projects"`
}

// ValidationResult lists the structural violations found in a manually
// edited document. An empty Issues slice means the document is acceptable.
type ValidationResult struct {
	Issues []string
}

// OK reports whether the document passed validation.
func (r *ValidationResult) OK() bool {
	return len(r.Issues) == 0
}

// Error summarizes the violations as a single user-facing message.
func (r *ValidationResult) Error() string {
	return strings.Join(r.Issues, "; ")
}

// ParseDocument parses and validates a manually edited JSON document.
// Malformed JSON or any structural violation returns without producing
// groups, so the caller's backing store stays untouched. Invariants: every
// group carries an id and a projects array; every project carries id, name,
// and path.
func ParseDocument(data []byte) ([]Group, *ValidationResult, error) {
	var raw []rawGroup
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	result := &ValidationResult{}
	for gi, g := range raw {
		label := fmt.Sprintf("group %d", gi+1)
		if g.GroupName != nil && *g.GroupName != "" {
			label = fmt.Sprintf("group %q", *g.GroupName)
		}

		if g.ID == nil || *g.ID == "" {
			result.Issues = append(result.Issues, label+" is missing an id")
		}
		if g.Projects == nil {
			result.Issues = append(result.Issues, label+" is missing a projects array")
			continue
		}

		for pi, p := range *g.Projects {
			pLabel := fmt.Sprintf("%s project %d", label, pi+1)
			if p.Name != nil && *p.Name != "" {
				pLabel = fmt.Sprintf("%s project %q", label, *p.Name)
			}
			if p.ID == nil || *p.ID == "" {
				result.Issues = append(result.Issues, pLabel+" is missing an id")
			}
			if p.Name == nil || *p.Name == "" {
				result.Issues = append(result.Issues, pLabel+" is missing a name")
			}
			if p.Path == nil || *p.Path == "" {
				result.Issues = append(result.Issues, pLabel+" is missing a path")
			}
		}
	}

	if !result.OK() {
		return nil, result, nil
	}

	groups := make([]Group, 0, len(raw))
	for _, g := range raw {
		group := Group{ID: *g.ID, Projects: []Project{}}
		if g.GroupName != nil {
			group.GroupName = *g.GroupName
		}
		if g.Collapsed != nil {
			group.Collapsed = *g.Collapsed
		}
		for _, p := range *g.Projects {
			project := Project{ID: *p.ID, Name: *p.Name, Path: *p.Path}
			if p.Color != nil {
				project.Color = *p.Color
			}
			if p.IsGitRepo != nil {
				project.IsGitRepo = *p.IsGitRepo
			}
			group.Projects = append(group.Projects, project)
		}
		groups = append(groups, group)
	}
	return groups, result, nil
}

// Replace swaps the store contents for a validated document and persists.
func (s *Store) Replace(groups []Group) error {
	s.Groups = groups
	return s.Save()
}
