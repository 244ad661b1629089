// Package ui provides the terminal user interface for projdeck.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the styles used in the UI.
type Theme struct {
	// Base styles
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// List styles
	ListBorder     lipgloss.Style
	SelectedItem   lipgloss.Style
	UnselectedItem lipgloss.Style
	GroupHeader    lipgloss.Style
	GroupCount     lipgloss.Style
	ProjectName    lipgloss.Style
	ProjectPath    lipgloss.Style
	GitMarker      lipgloss.Style
	BadgeLocal     lipgloss.Style
	BadgeSSH       lipgloss.Style
	BadgeWSL       lipgloss.Style
	BadgeContainer lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMessage lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style

	// Help bar
	HelpBar  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpText lipgloss.Style
	HelpSep  lipgloss.Style

	// Modal styles
	ModalBorder  lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalContent lipgloss.Style
	ModalHelp    lipgloss.Style
}

// DarkTheme returns a theme for dark terminals.
func DarkTheme() Theme {
	return Theme{
		App: lipgloss.NewStyle(),

		Header:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")), // Cyan

		ListBorder:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		SelectedItem:   lipgloss.NewStyle().Background(lipgloss.Color("17")).Foreground(lipgloss.Color("15")), // Dark blue bg
		UnselectedItem: lipgloss.NewStyle(),
		GroupHeader:    lipgloss.NewStyle().Bold(true),
		GroupCount:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		ProjectName:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),  // White
		ProjectPath:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),   // Silver
		GitMarker:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),  // Lime
		BadgeLocal:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		BadgeSSH:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),  // Blue
		BadgeWSL:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),  // Yellow
		BadgeContainer: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),  // Magenta

		StatusBar:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		StatusMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red

		HelpBar:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		HelpKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		HelpText: lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // White
		HelpSep:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		ModalBorder:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("14")).Padding(1, 2),
		ModalTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		ModalContent: lipgloss.NewStyle(),
		ModalHelp:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// LightTheme returns a theme for light terminals.
func LightTheme() Theme {
	return Theme{
		App: lipgloss.NewStyle(),

		Header:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")), // Blue

		ListBorder:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		SelectedItem:   lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0")), // Light gray bg
		UnselectedItem: lipgloss.NewStyle(),
		GroupHeader:    lipgloss.NewStyle().Bold(true),
		GroupCount:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ProjectName:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")),   // Black
		ProjectPath:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Dark gray
		GitMarker:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),   // Dark green
		BadgeLocal:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // Gray
		BadgeSSH:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),   // Blue
		BadgeWSL:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),   // Dark yellow
		BadgeContainer: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),   // Purple

		StatusBar:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		StatusMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Dark yellow
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Dark yellow
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")), // Red

		HelpBar:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		HelpKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")), // Blue
		HelpText: lipgloss.NewStyle().Foreground(lipgloss.Color("0")), // Black
		HelpSep:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		ModalBorder:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(1, 2),
		ModalTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		ModalContent: lipgloss.NewStyle(),
		ModalHelp:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// DetectTheme returns the appropriate theme based on PROJDECK_THEME env var.
func DetectTheme() Theme {
	if override := os.Getenv("PROJDECK_THEME"); override != "" {
		switch strings.ToLower(override) {
		case "dark":
			return DarkTheme()
		}
	}
	return LightTheme()
}

// GetTheme returns the theme based on the theme name.
func GetTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}
