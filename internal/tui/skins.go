package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/intent"
)

func (m *Model) handleSkinsKey(msg tea.KeyMsg) tea.Cmd {
	skins := m.view.State.Skins
	cursor := m.cursors[TabSkins]

	switch {
	case key.Matches(msg, m.keys.AddSkin):
		m.skinVariant = intent.DefaultSkinVariant
		return m.openInput(inputSkinPath, "path to a 64x64 PNG skin", "")
	case key.Matches(msg, m.keys.AddSlimSkin):
		m.skinVariant = intent.SlimSkinVariant
		return m.openInput(inputSkinPath, "path to a 64x64 PNG skin (slim arms)", "")
	case key.Matches(msg, m.keys.ClearSkin):
		m.sender.ClearSkin()
		return nil
	}

	if cursor >= len(skins) {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		m.sender.SelectSkin(skins[cursor].ID)
	case key.Matches(msg, m.keys.RemoveSkin):
		m.sender.RemoveSkin(skins[cursor].ID)
	}

	return nil
}

// addSkinFromFile reads a skin image chosen by the user and uploads it.
func (m *Model) addSkinFromFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.notice = "Cannot read skin: " + err.Error()
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !m.sender.AddSkin(name, data, m.skinVariant) {
		m.notice = "Skin must be a PNG image"
	}
}

func (m Model) renderSkins(width int) string {
	state := m.view.State

	var b strings.Builder

	if state.NeedsFabricForSkins() {
		b.WriteString(m.styles.warning.Render(truncate(
			"Offline accounts need the Performance Pack (Fabric) for skins to show in-game", width)) + "\n\n")
	}

	selected, hasSelected := state.SelectedSkin()
	if hasSelected {
		b.WriteString("Current: " + m.styles.title.Render(selected.Name) + "\n\n")
	} else {
		b.WriteString(m.styles.muted.Render("Current: default skin") + "\n\n")
	}

	if len(state.Skins) == 0 {
		b.WriteString(m.styles.muted.Render("No skins yet. Press a to add one."))
		return b.String()
	}

	for i, skin := range state.Skins {
		label := fmt.Sprintf("%s (%s)", skin.Name, skin.Variant)
		if hasSelected && skin.ID == selected.ID {
			label += " ✓"
		}

		b.WriteString(m.row(i == m.cursors[TabSkins], label, width) + "\n")
	}

	return b.String()
}
