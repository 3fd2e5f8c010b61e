package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/envelope"
)

func (m *Model) handleModsKey(msg tea.KeyMsg) {
	mods := m.view.State.Mods
	cursor := m.cursors[TabMods]

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.sender.RefreshMods()
		return
	case key.Matches(msg, m.keys.ModsFolder):
		m.sender.OpenFolder(envelope.FolderMods)
		return
	case key.Matches(msg, m.keys.InstallMod):
		m.sender.InstallAMCMod()
		return
	}

	if cursor >= len(mods) {
		return
	}

	mod := mods[cursor]

	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Toggle):
		m.sender.ToggleMod(mod)
	case key.Matches(msg, m.keys.Delete):
		m.pendingMod = mod.FileName
		m.notice = fmt.Sprintf("Delete %s? press y to confirm", mod.FileName)
	case key.Matches(msg, m.keys.Confirm) && m.pendingMod == mod.FileName:
		m.sender.DeleteMod(mod.FileName)
		m.pendingMod = ""
		m.notice = ""
	default:
		m.pendingMod = ""
	}
}

func (m Model) renderMods(width int) string {
	state := m.view.State

	var b strings.Builder

	modStatus := state.Settings.AMCModStatus
	if modStatus == "" {
		modStatus = "AMC mod: unknown"
	}

	b.WriteString(m.styles.muted.Render(truncate(modStatus, width)) + "\n\n")

	if len(state.Mods) == 0 {
		b.WriteString(m.styles.muted.Render("No mods found. Press o to open the mods folder."))
		return b.String()
	}

	for i, mod := range state.Mods {
		mark := m.styles.danger.Render("○")
		if mod.Enabled {
			mark = m.styles.success.Render("●")
		}

		label := fmt.Sprintf("%s %s  %s", mod.Name, mod.Version, mod.FileName)
		b.WriteString(mark + " " + m.row(i == m.cursors[TabMods], label, width-2) + "\n")
	}

	return b.String()
}
