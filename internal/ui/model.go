package ui

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"projdeck/internal/store"
)

// Modal represents which modal is currently shown.
type Modal int

const (
	ModalNone Modal = iota
	ModalHelp
	ModalConfirmDelete
	ModalPrompt
)

// PromptKind identifies what the text prompt is collecting.
type PromptKind int

const (
	PromptAddProject PromptKind = iota
	PromptAddGroup
	PromptRename
)

// OpenAction selects how the selected project is opened.
type OpenAction int

const (
	OpenDefault OpenAction = iota
	OpenNewWindow
	OpenAddToWorkspace
)

// StatusMessageType represents the type of status message.
type StatusMessageType int

const (
	StatusInfo StatusMessageType = iota
	StatusWarning
	StatusError
)

// StatusMessage represents a status message to display.
type StatusMessage struct {
	Type StatusMessageType
	Text string
}

// Model is the Bubble Tea model for the application.
type Model struct {
	// UI state
	Theme       Theme
	Width       int
	Height      int
	ActiveModal Modal

	// Application state
	Groups        []store.Group
	Selection     *SelectionManager
	StatusMessage *StatusMessage
	ShowPaths     bool
	ConfirmRemove bool

	// Prompt state
	Input        textinput.Model
	Prompt       PromptKind
	promptTarget SelectableItem

	// Pending destructive action
	deleteTarget SelectableItem
	deleteLabel  string

	// Callbacks for operations (set by the command layer)
	OnOpen           func(ctx context.Context, projectID string, action OpenAction) error
	OnAddProject     func(groupID, path string) error
	OnAddGroup       func(name string) error
	OnRemoveProject  func(projectID string) error
	OnRemoveGroup    func(groupID string) error
	OnRenameProject  func(projectID, name string) error
	OnRenameGroup    func(groupID, name string) error
	OnToggleCollapse func(groupID string) error
	OnMoveProject    func(projectID string, delta int) error
	Reload           func() ([]store.Group, error)
	ColorFor         func(p *store.Project) string

	// Manual bulk edit: returns the editor command to run, the apply step,
	// and a cleanup for the temp file.
	BeginEdit func() (*exec.Cmd, func() error, func(), error)

	// Store watcher; nil when watching is unavailable.
	Watcher *StoreWatcher
}

// KeyMap defines the key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	NewWindow   key.Binding
	AddToWS     key.Binding
	Add         key.Binding
	AddGroup    key.Binding
	Delete      key.Binding
	Rename      key.Binding
	Collapse    key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Edit        key.Binding
	Reload      key.Binding
	TogglePaths key.Binding
	Help        key.Binding
	Quit        key.Binding
	Escape      key.Binding
	Confirm     key.Binding
	Deny        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		NewWindow: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "open in new window"),
		),
		AddToWS: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "add to workspace"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add project"),
		),
		AddGroup: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add group"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse group"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit list"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		TogglePaths: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle paths"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "cancel"),
		),
	}
}

var keys = DefaultKeyMap()

// NewModel creates a new Model with the given theme.
func NewModel(theme Theme) Model {
	input := textinput.New()
	input.CharLimit = 256
	return Model{
		Theme:     theme,
		Selection: NewSelectionManager(),
		Groups:    []store.Group{},
		Input:     input,
	}
}

// SetGroups replaces the group snapshot and rebuilds the selection.
func (m *Model) SetGroups(groups []store.Group) {
	m.Groups = groups
	m.Selection.RebuildFromGroups(groups)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.Watcher != nil {
		return m.Watcher.WaitCmd()
	}
	return nil
}

// Message types for async operations.
type (
	ReloadDoneMsg struct {
		Groups []store.Group
		Err    error
	}
	OperationDoneMsg struct {
		Err  error
		Info string
	}
	EditFinishedMsg struct{ Err error }
	StoreChangedMsg struct{}
	ClearFlashMsg   struct{}
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case ReloadDoneMsg:
		if msg.Err != nil {
			m.StatusMessage = &StatusMessage{Type: StatusError, Text: msg.Err.Error()}
			return m, m.flashCmd()
		}
		m.SetGroups(msg.Groups)
		return m, nil

	case OperationDoneMsg:
		if msg.Err != nil {
			m.StatusMessage = &StatusMessage{Type: StatusError, Text: msg.Err.Error()}
		} else if msg.Info != "" {
			m.StatusMessage = &StatusMessage{Type: StatusInfo, Text: msg.Info}
		}
		return m, tea.Batch(m.reloadCmd(), m.flashCmd())

	case EditFinishedMsg:
		if msg.Err != nil {
			m.StatusMessage = &StatusMessage{Type: StatusError, Text: msg.Err.Error()}
			return m, tea.Batch(m.reloadCmd(), m.flashCmd())
		}
		return m, m.reloadCmd()

	case StoreChangedMsg:
		// External change to the store file: reload and keep watching.
		cmds := []tea.Cmd{m.reloadCmd()}
		if m.Watcher != nil {
			cmds = append(cmds, m.Watcher.WaitCmd())
		}
		return m, tea.Batch(cmds...)

	case ClearFlashMsg:
		// Clear non-error status messages after timeout
		if m.StatusMessage != nil && m.StatusMessage.Type == StatusInfo {
			m.StatusMessage = nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ActiveModal != ModalNone {
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	// Header (3) + list border top (1): first row at y=4.
	listTop := 4
	listBottom := m.Height - 6 // Status (3) + Help (3)

	if msg.Y >= listTop && msg.Y < listBottom {
		clickedIndex := msg.Y - listTop
		if clickedIndex >= 0 && clickedIndex < m.Selection.TotalItems() {
			item := m.Selection.ItemAt(clickedIndex)
			alreadySelected := clickedIndex == m.Selection.RawIndex()
			m.Selection.SetIndex(clickedIndex)
			if item == nil || !alreadySelected {
				return m, nil
			}
			// Second click acts on the item: toggle a group, open a project.
			switch item.Type {
			case SelectableGroup:
				return m, m.toggleCollapseCmd(item.GroupIndex)
			case SelectableProject:
				return m, m.openCmd(OpenDefault)
			}
		}
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ActiveModal != ModalNone {
		return m.handleModalKeyPress(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.ActiveModal = ModalHelp
		return m, nil

	case key.Matches(msg, keys.Up):
		m.Selection.SelectPrevious()
		return m, nil

	case key.Matches(msg, keys.Down):
		m.Selection.SelectNext()
		return m, nil

	case key.Matches(msg, keys.Enter):
		if item := m.Selection.SelectedItem(); item != nil {
			switch item.Type {
			case SelectableGroup:
				return m, m.toggleCollapseCmd(item.GroupIndex)
			case SelectableProject:
				return m, m.openCmd(OpenDefault)
			}
		}
		return m, nil

	case key.Matches(msg, keys.NewWindow):
		return m, m.openCmd(OpenNewWindow)

	case key.Matches(msg, keys.AddToWS):
		return m, m.openCmd(OpenAddToWorkspace)

	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right), key.Matches(msg, keys.Collapse):
		if groupIdx := m.Selection.SelectedGroupIndex(); groupIdx >= 0 {
			return m, m.toggleCollapseCmd(groupIdx)
		}
		return m, nil

	case key.Matches(msg, keys.Add):
		return m.openPrompt(PromptAddProject, "Project path", ""), nil

	case key.Matches(msg, keys.AddGroup):
		return m.openPrompt(PromptAddGroup, "Group name", ""), nil

	case key.Matches(msg, keys.Rename):
		item := m.Selection.SelectedItem()
		if item == nil {
			return m, nil
		}
		current := ""
		switch item.Type {
		case SelectableGroup:
			current = m.Groups[item.GroupIndex].GroupName
		case SelectableProject:
			current = m.Groups[item.GroupIndex].Projects[item.ProjectIndex].Name
		}
		return m.openPrompt(PromptRename, "New name", current), nil

	case key.Matches(msg, keys.Delete):
		item := m.Selection.SelectedItem()
		if item == nil {
			return m, nil
		}
		m.deleteTarget = *item
		switch item.Type {
		case SelectableGroup:
			m.deleteLabel = "group " + m.Groups[item.GroupIndex].DisplayName()
		case SelectableProject:
			m.deleteLabel = "project " + m.Groups[item.GroupIndex].Projects[item.ProjectIndex].Name
		}
		if !m.ConfirmRemove {
			return m, m.deleteCmd()
		}
		m.ActiveModal = ModalConfirmDelete
		return m, nil

	case key.Matches(msg, keys.MoveUp):
		return m, m.moveCmd(-1)

	case key.Matches(msg, keys.MoveDown):
		return m, m.moveCmd(1)

	case key.Matches(msg, keys.Edit):
		return m.startManualEdit()

	case key.Matches(msg, keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, keys.TogglePaths):
		m.ShowPaths = !m.ShowPaths
		return m, nil
	}

	return m, nil
}

func (m Model) handleModalKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ActiveModal {
	case ModalHelp:
		if key.Matches(msg, keys.Help) || key.Matches(msg, keys.Escape) || key.Matches(msg, keys.Quit) {
			m.ActiveModal = ModalNone
		}
		return m, nil

	case ModalConfirmDelete:
		switch {
		case key.Matches(msg, keys.Confirm):
			m.ActiveModal = ModalNone
			return m, m.deleteCmd()
		case key.Matches(msg, keys.Deny), key.Matches(msg, keys.Escape):
			// Dismissal is a silent abort.
			m.ActiveModal = ModalNone
		}
		return m, nil

	case ModalPrompt:
		switch msg.Type {
		case tea.KeyEscape:
			m.ActiveModal = ModalNone
			m.Input.Blur()
			return m, nil
		case tea.KeyEnter:
			value := strings.TrimSpace(m.Input.Value())
			m.ActiveModal = ModalNone
			m.Input.Blur()
			if value == "" {
				return m, nil
			}
			return m, m.submitPromptCmd(value)
		}
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// openPrompt switches to the text prompt modal, remembering the selection it
// applies to.
func (m Model) openPrompt(kind PromptKind, placeholder, initial string) Model {
	m.Prompt = kind
	if item := m.Selection.SelectedItem(); item != nil {
		m.promptTarget = *item
	} else {
		m.promptTarget = SelectableItem{GroupIndex: -1, ProjectIndex: -1}
	}
	m.Input.Placeholder = placeholder
	m.Input.SetValue(initial)
	m.Input.CursorEnd()
	m.Input.Focus()
	m.ActiveModal = ModalPrompt
	return m
}

func (m Model) startManualEdit() (tea.Model, tea.Cmd) {
	if m.BeginEdit == nil {
		return m, nil
	}
	cmd, apply, cleanup, err := m.BeginEdit()
	if err != nil {
		m.StatusMessage = &StatusMessage{Type: StatusError, Text: err.Error()}
		return m, m.flashCmd()
	}
	return m, tea.ExecProcess(cmd, func(execErr error) tea.Msg {
		defer cleanup()
		if execErr != nil {
			return EditFinishedMsg{Err: execErr}
		}
		if applyErr := apply(); applyErr != nil {
			return EditFinishedMsg{Err: applyErr}
		}
		return EditFinishedMsg{}
	})
}

// selectedProjectID returns the ID of the selected project, or "".
func (m Model) selectedProjectID() string {
	groupIdx, projIdx := m.Selection.SelectedProject()
	if groupIdx < 0 {
		return ""
	}
	return m.Groups[groupIdx].Projects[projIdx].ID
}

// Command functions

func (m Model) openCmd(action OpenAction) tea.Cmd {
	projectID := m.selectedProjectID()
	if projectID == "" || m.OnOpen == nil {
		return nil
	}
	return func() tea.Msg {
		err := m.OnOpen(context.Background(), projectID, action)
		return OperationDoneMsg{Err: err}
	}
}

func (m Model) toggleCollapseCmd(groupIdx int) tea.Cmd {
	if m.OnToggleCollapse == nil || groupIdx < 0 || groupIdx >= len(m.Groups) {
		return nil
	}
	groupID := m.Groups[groupIdx].ID
	return func() tea.Msg {
		return OperationDoneMsg{Err: m.OnToggleCollapse(groupID)}
	}
}

func (m Model) deleteCmd() tea.Cmd {
	item := m.deleteTarget
	label := m.deleteLabel
	return func() tea.Msg {
		var err error
		switch item.Type {
		case SelectableGroup:
			if m.OnRemoveGroup != nil && item.GroupIndex < len(m.Groups) {
				err = m.OnRemoveGroup(m.Groups[item.GroupIndex].ID)
			}
		case SelectableProject:
			if m.OnRemoveProject != nil && item.GroupIndex < len(m.Groups) {
				group := m.Groups[item.GroupIndex]
				if item.ProjectIndex < len(group.Projects) {
					err = m.OnRemoveProject(group.Projects[item.ProjectIndex].ID)
				}
			}
		}
		if err != nil {
			return OperationDoneMsg{Err: err}
		}
		return OperationDoneMsg{Info: "Removed " + label}
	}
}

func (m Model) moveCmd(delta int) tea.Cmd {
	projectID := m.selectedProjectID()
	if projectID == "" || m.OnMoveProject == nil {
		return nil
	}
	return func() tea.Msg {
		return OperationDoneMsg{Err: m.OnMoveProject(projectID, delta)}
	}
}

func (m Model) submitPromptCmd(value string) tea.Cmd {
	kind := m.Prompt
	target := m.promptTarget
	return func() tea.Msg {
		switch kind {
		case PromptAddProject:
			if m.OnAddProject == nil {
				return OperationDoneMsg{}
			}
			groupID := ""
			if target.GroupIndex >= 0 && target.GroupIndex < len(m.Groups) {
				groupID = m.Groups[target.GroupIndex].ID
			}
			if err := m.OnAddProject(groupID, value); err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Info: "Added project"}

		case PromptAddGroup:
			if m.OnAddGroup == nil {
				return OperationDoneMsg{}
			}
			if err := m.OnAddGroup(value); err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Info: "Added group " + value}

		case PromptRename:
			if target.GroupIndex < 0 || target.GroupIndex >= len(m.Groups) {
				return OperationDoneMsg{}
			}
			group := m.Groups[target.GroupIndex]
			var err error
			if target.Type == SelectableGroup {
				if m.OnRenameGroup != nil {
					err = m.OnRenameGroup(group.ID, value)
				}
			} else if target.ProjectIndex < len(group.Projects) {
				if m.OnRenameProject != nil {
					err = m.OnRenameProject(group.Projects[target.ProjectIndex].ID, value)
				}
			}
			if err != nil {
				return OperationDoneMsg{Err: err}
			}
			return OperationDoneMsg{Info: "Renamed to " + value}
		}
		return OperationDoneMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	if m.Reload == nil {
		return nil
	}
	return func() tea.Msg {
		groups, err := m.Reload()
		return ReloadDoneMsg{Groups: groups, Err: err}
	}
}

// flashCmd returns a command that clears the status message after a delay.
func (m Model) flashCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// truncateLine truncates a line to fit within maxWidth, accounting for ANSI codes.
// Adds ellipsis (…) when truncation occurs.
func truncateLine(line string, maxWidth int) string {
	width := lipgloss.Width(line)
	if width <= maxWidth {
		return line
	}

	targetWidth := maxWidth - 1 // Reserve 1 char for …
	if targetWidth < 1 {
		return "…"
	}

	runes := []rune(line)
	for i := len(runes) - 1; i >= 0; i-- {
		truncated := string(runes[:i])
		if lipgloss.Width(truncated) <= targetWidth {
			return truncated + "…"
		}
	}
	return "…"
}
