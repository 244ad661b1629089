package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"projdeck/internal/remote"
	"projdeck/internal/store"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	headerHeight := 3
	statusHeight := 3
	helpHeight := 3
	listHeight := m.Height - headerHeight - statusHeight - helpHeight

	header := m.renderHeader()
	list := m.renderList(listHeight)
	status := m.renderStatus()
	help := m.renderHelp()

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		list,
		status,
		help,
	)

	if m.ActiveModal != ModalNone {
		modal := m.renderModal()
		mainView = m.overlayModal(mainView, modal)
	}

	return mainView
}

func (m Model) renderHeader() string {
	title := m.Theme.HeaderTitle.Render("Projdeck")
	return m.Theme.Header.Width(m.Width - 2).Render(title)
}

func (m Model) renderList(height int) string {
	totalProjects := 0
	for _, group := range m.Groups {
		totalProjects += len(group.Projects)
	}
	title := fmt.Sprintf(" Projects (%d groups, %d projects) ", len(m.Groups), totalProjects)

	// Available width for content (account for border padding)
	contentWidth := m.Width - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	var items []string
	for i, item := range m.Selection.Items() {
		selected := i == m.Selection.RawIndex()
		var line string
		switch item.Type {
		case SelectableGroup:
			line = m.renderGroupHeader(&m.Groups[item.GroupIndex], contentWidth)
		case SelectableProject:
			project := &m.Groups[item.GroupIndex].Projects[item.ProjectIndex]
			line = m.renderProjectRow(project, contentWidth)
		}

		line = truncateLine(line, contentWidth)
		if selected {
			// Use Width() on style to ensure full-width background
			line = m.Theme.SelectedItem.Width(contentWidth).Render(line)
		}
		items = append(items, line)
	}

	// Join items and pad to fill height
	content := strings.Join(items, "\n")
	innerHeight := height - 2 // Account for border
	lines := strings.Split(content, "\n")
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	content = strings.Join(lines, "\n")

	return m.Theme.ListBorder.
		Width(m.Width - 2).
		Height(height - 2).
		Render(m.Theme.GroupHeader.Render(title) + "\n" + content)
}

func (m Model) renderGroupHeader(group *store.Group, maxWidth int) string {
	icon := "▼"
	if group.Collapsed {
		icon = "▶"
	}
	name := m.Theme.GroupHeader.Render(group.DisplayName())
	count := m.Theme.GroupCount.Render(fmt.Sprintf("(%d)", len(group.Projects)))
	return fmt.Sprintf("%s %s %s", icon, name, count)
}

func (m Model) renderProjectRow(project *store.Project, maxWidth int) string {
	var parts []string

	// Color swatch
	if m.ColorFor != nil {
		if color := m.ColorFor(project); color != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■"))
		} else {
			parts = append(parts, " ")
		}
	}

	parts = append(parts, m.Theme.ProjectName.Render(project.Name))

	if project.IsGitRepo {
		parts = append(parts, m.Theme.GitMarker.Render("±"))
	}

	if badge := m.renderBadge(project); badge != "" {
		parts = append(parts, badge)
	}

	if m.ShowPaths {
		path := applyTilde(remote.DisplayPath(project.Path))
		parts = append(parts, m.Theme.ProjectPath.Render(path))
	}

	return "  " + strings.Join(parts, " ")
}

// renderBadge returns the remote-type badge for a project; local projects
// get none.
func (m Model) renderBadge(project *store.Project) string {
	switch remote.TypeOf(project.Path) {
	case remote.SSH:
		return m.Theme.BadgeSSH.Render("[ssh]")
	case remote.WSL:
		return m.Theme.BadgeWSL.Render("[wsl]")
	case remote.Container:
		return m.Theme.BadgeContainer.Render("[container]")
	default:
		return ""
	}
}

func (m Model) renderStatus() string {
	var text string
	style := m.Theme.StatusMessage

	if m.StatusMessage != nil {
		text = m.StatusMessage.Text
		switch m.StatusMessage.Type {
		case StatusWarning:
			style = m.Theme.StatusWarning
		case StatusError:
			style = m.Theme.StatusError
		}
	} else {
		text = "Ready"
	}

	return m.Theme.StatusBar.Width(m.Width - 2).Render(style.Render(text))
}

func (m Model) renderHelp() string {
	var items []string

	items = append(items,
		m.Theme.HelpKey.Render("↑/↓/j/k")+" Nav",
		m.Theme.HelpKey.Render("↵")+" Open",
	)

	if m.Selection.IsProjectSelected() {
		items = append(items,
			m.Theme.HelpKey.Render("n")+" New window",
			m.Theme.HelpKey.Render("w")+" Add to workspace",
			m.Theme.HelpKey.Render("R")+" Rename",
			m.Theme.HelpKey.Render("d")+" Delete",
		)
	} else if m.Selection.IsGroupSelected() {
		items = append(items,
			m.Theme.HelpKey.Render("h/l/c")+" Collapse",
			m.Theme.HelpKey.Render("a")+" Add project",
			m.Theme.HelpKey.Render("d")+" Delete",
		)
	}

	items = append(items,
		m.Theme.HelpKey.Render("?")+" Help",
		m.Theme.HelpKey.Render("q")+" Quit",
	)

	sep := m.Theme.HelpSep.Render(" | ")
	return m.Theme.HelpBar.Width(m.Width - 2).Render(strings.Join(items, sep))
}

func (m Model) renderModal() string {
	switch m.ActiveModal {
	case ModalHelp:
		return m.renderHelpModal()
	case ModalConfirmDelete:
		return m.renderConfirmModal()
	case ModalPrompt:
		return m.renderPromptModal()
	}
	return ""
}

func (m Model) renderHelpModal() string {
	content := m.Theme.ModalTitle.Render("NAVIGATION") + "\n"
	content += "  ↑/k, ↓/j        Move selection up/down\n"
	content += "  h/←, l/→, c     Collapse/expand group\n"
	content += "\n"
	content += m.Theme.ModalTitle.Render("OPEN") + "\n"
	content += "  ↵               Open project\n"
	content += "  n               Open in a new window\n"
	content += "  w               Add folder to current workspace\n"
	content += "\n"
	content += m.Theme.ModalTitle.Render("LIST ACTIONS") + "\n"
	content += "  a               Add project (to selected group)\n"
	content += "  A               Add group\n"
	content += "  d               Delete project or group\n"
	content += "  R               Rename project or group\n"
	content += "  J/K             Move project down/up\n"
	content += "  e               Edit the list in your editor\n"
	content += "  r               Reload from disk\n"
	content += "\n"
	content += m.Theme.ModalTitle.Render("DISPLAY") + "\n"
	content += "  p               Toggle path display\n"
	content += "  q, Ctrl-C       Quit\n"
	content += "  ?               Toggle this help screen\n"
	content += "\n"
	content += m.Theme.ModalHelp.Render("Press ? or Esc to close")

	return m.Theme.ModalBorder.Render(
		m.Theme.ModalTitle.Render(" Projdeck - Keyboard Commands ") + "\n\n" + content,
	)
}

func (m Model) renderConfirmModal() string {
	return m.Theme.ModalBorder.Render(
		m.Theme.ModalTitle.Render(" Confirm ") + "\n\n" +
			"Delete " + m.deleteLabel + "?\n\n" +
			m.Theme.ModalHelp.Render("y to confirm, n or Esc to cancel"),
	)
}

func (m Model) renderPromptModal() string {
	var title string
	switch m.Prompt {
	case PromptAddProject:
		title = " Add Project "
	case PromptAddGroup:
		title = " Add Group "
	case PromptRename:
		title = " Rename "
	}
	return m.Theme.ModalBorder.Render(
		m.Theme.ModalTitle.Render(title) + "\n\n" +
			m.Input.View() + "\n\n" +
			m.Theme.ModalHelp.Render("Enter to confirm, Esc to cancel"),
	)
}

func (m Model) overlayModal(base, modal string) string {
	// Center the modal on the screen
	modalLines := strings.Split(modal, "\n")
	modalHeight := len(modalLines)
	modalWidth := 0
	for _, line := range modalLines {
		if lipgloss.Width(line) > modalWidth {
			modalWidth = lipgloss.Width(line)
		}
	}

	x := (m.Width - modalWidth) / 2
	y := (m.Height - modalHeight) / 2

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	baseLines := strings.Split(base, "\n")
	for i := 0; i < modalHeight && y+i < len(baseLines); i++ {
		if y+i >= 0 && y+i < len(baseLines) {
			line := baseLines[y+i]
			modalLine := ""
			if i < len(modalLines) {
				modalLine = modalLines[i]
			}

			// Keep the base line up to the modal's column. Cut by display
			// width so escape sequences and wide runes stay intact.
			prefix := ""
			if x > 0 && x < lipgloss.Width(line) {
				prefix = ansi.Truncate(line, x, "")
			}

			baseLines[y+i] = prefix + modalLine
		}
	}

	return strings.Join(baseLines, "\n")
}

// applyTilde compresses a home-directory prefix to ~. Remote display paths
// (host:/path) have the tilde applied to the path part only.
func applyTilde(display string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return display
	}

	if colonPos := strings.LastIndex(display, ":"); colonPos >= 0 {
		prefix := display[:colonPos+1]
		path := display[colonPos+1:]
		return prefix + applyTildeToPath(path, home)
	}

	return applyTildeToPath(display, home)
}

func applyTildeToPath(path string, home string) string {
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}

	if strings.HasPrefix(path, "/home/") {
		rest := path[6:]
		if slashPos := strings.Index(rest, "/"); slashPos >= 0 {
			username := rest[:slashPos]
			remainder := rest[slashPos:]
			return "~" + username + remainder
		}
		return "~" + rest
	}

	if strings.HasPrefix(path, "/Users/") {
		rest := path[7:]
		if slashPos := strings.Index(rest, "/"); slashPos >= 0 {
			username := rest[:slashPos]
			remainder := rest[slashPos:]
			return "~" + username + remainder
		}
		return "~" + rest
	}

	return path
}
