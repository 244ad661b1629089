package app

import (
	"encoding/json"
	"hash/fnv"
	"os"
	"path/filepath"

	"projdeck/internal/remote"
	"projdeck/internal/store"
)

// randomPalette is the pool the "random" color sentinel draws from.
var randomPalette = []string{
	"#e06c75", "#d19a66", "#e5c07b", "#98c379",
	"#56b6c2", "#61afef", "#c678dd", "#be5046",
}

// ProjectColor resolves a project's swatch color. The "random" sentinel maps
// to a palette entry keyed by project ID so the pick is stable across runs.
// The "auto" sentinel reads the folder's workspace color customization; any
// failure resolves to no color.
func (a *App) ProjectColor(p *store.Project) string {
	switch p.Color {
	case "":
		return ""
	case store.ColorRandom:
		h := fnv.New32a()
		h.Write([]byte(p.ID))
		return randomPalette[h.Sum32()%uint32(len(randomPalette))]
	case store.ColorAuto:
		return a.workspaceColor(p.Path)
	default:
		return p.Color
	}
}

// workspaceColor reads titleBar.activeBackground from the folder's
// .vscode/settings.json. Remote paths and unreadable or unexpected files
// resolve to "".
func (a *App) workspaceColor(path string) string {
	if remote.TypeOf(path) != remote.None {
		return ""
	}
	abs, err := a.ResolveLocalPath(path)
	if err != nil {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(abs, ".vscode", "settings.json"))
	if err != nil {
		return ""
	}

	var settings struct {
		Customizations map[string]string `json:"workbench.colorCustomizations"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return ""
	}
	return settings.Customizations["titleBar.activeBackground"]
}
