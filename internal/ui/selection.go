package ui

import "projdeck/internal/store"

// SelectableItemType represents the type of item in the selection list.
type SelectableItemType int

const (
	// SelectableGroup represents a group header.
	SelectableGroup SelectableItemType = iota
	// SelectableProject represents a project within a group.
	SelectableProject
)

// SelectableItem represents an item that can be selected in the panel.
type SelectableItem struct {
	Type         SelectableItemType
	GroupIndex   int
	ProjectIndex int // Only valid when Type == SelectableProject
}

// SelectionManager manages selection state in the flattened group/project tree.
type SelectionManager struct {
	items         []SelectableItem
	selectedIndex int
}

// NewSelectionManager creates a new SelectionManager.
func NewSelectionManager() *SelectionManager {
	return &SelectionManager{
		items:         []SelectableItem{},
		selectedIndex: 0,
	}
}

// RebuildFromGroups rebuilds the items list from groups. Collapsed groups
// contribute only their header.
func (sm *SelectionManager) RebuildFromGroups(groups []store.Group) {
	sm.items = sm.items[:0] // Clear but keep capacity

	for groupIdx, group := range groups {
		sm.items = append(sm.items, SelectableItem{
			Type:       SelectableGroup,
			GroupIndex: groupIdx,
		})

		if !group.Collapsed {
			for projIdx := range group.Projects {
				sm.items = append(sm.items, SelectableItem{
					Type:         SelectableProject,
					GroupIndex:   groupIdx,
					ProjectIndex: projIdx,
				})
			}
		}
	}

	// Clamp selection to valid range
	if len(sm.items) > 0 && sm.selectedIndex >= len(sm.items) {
		sm.selectedIndex = len(sm.items) - 1
	} else if len(sm.items) == 0 {
		sm.selectedIndex = 0
	}
}

// TotalItems returns the total number of items.
func (sm *SelectionManager) TotalItems() int {
	return len(sm.items)
}

// RawIndex returns the raw selected index (for UI rendering).
func (sm *SelectionManager) RawIndex() int {
	return sm.selectedIndex
}

// Items returns the list of selectable items.
func (sm *SelectionManager) Items() []SelectableItem {
	return sm.items
}

// SelectedItem returns the currently selected item, or nil if none.
func (sm *SelectionManager) SelectedItem() *SelectableItem {
	if sm.selectedIndex >= 0 && sm.selectedIndex < len(sm.items) {
		return &sm.items[sm.selectedIndex]
	}
	return nil
}

// SelectedGroupIndex returns the index of the selected group.
// For projects, returns the parent group index.
func (sm *SelectionManager) SelectedGroupIndex() int {
	item := sm.SelectedItem()
	if item == nil {
		return -1
	}
	return item.GroupIndex
}

// SelectedProject returns the group and project indices if a project is
// selected. Returns (-1, -1) if no project is selected.
func (sm *SelectionManager) SelectedProject() (int, int) {
	item := sm.SelectedItem()
	if item == nil || item.Type != SelectableProject {
		return -1, -1
	}
	return item.GroupIndex, item.ProjectIndex
}

// IsGroupSelected returns true if a group header is selected.
func (sm *SelectionManager) IsGroupSelected() bool {
	item := sm.SelectedItem()
	return item != nil && item.Type == SelectableGroup
}

// IsProjectSelected returns true if a project is selected.
func (sm *SelectionManager) IsProjectSelected() bool {
	item := sm.SelectedItem()
	return item != nil && item.Type == SelectableProject
}

// SelectNext moves selection to the next item (wraps around).
func (sm *SelectionManager) SelectNext() {
	total := len(sm.items)
	if total > 0 {
		sm.selectedIndex = (sm.selectedIndex + 1) % total
	}
}

// SelectPrevious moves selection to the previous item (wraps around).
func (sm *SelectionManager) SelectPrevious() {
	total := len(sm.items)
	if total > 0 {
		if sm.selectedIndex == 0 {
			sm.selectedIndex = total - 1
		} else {
			sm.selectedIndex--
		}
	}
}

// SetIndex sets the selection directly by raw index.
func (sm *SelectionManager) SetIndex(index int) {
	total := len(sm.items)
	if total > 0 {
		if index >= total {
			sm.selectedIndex = total - 1
		} else if index < 0 {
			sm.selectedIndex = 0
		} else {
			sm.selectedIndex = index
		}
	}
}

// ItemAt returns the item at the given index, or nil if out of bounds.
func (sm *SelectionManager) ItemAt(index int) *SelectableItem {
	if index >= 0 && index < len(sm.items) {
		return &sm.items[index]
	}
	return nil
}
