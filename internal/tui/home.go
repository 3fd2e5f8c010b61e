package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/envelope"
)

func (m *Model) handleHomeKey(msg tea.KeyMsg) {
	state := m.view.State

	switch {
	case key.Matches(msg, m.keys.Play):
		if !m.sender.PlayOrBusy(state) {
			m.notice = "Launcher is busy"
		}
	case key.Matches(msg, m.keys.Select):
		choices := state.VersionChoices()
		if cursor := m.cursors[TabHome]; cursor < len(choices) {
			m.sender.SetVersion(choices[cursor].ID)
		}
	case key.Matches(msg, m.keys.GameFolder):
		m.sender.OpenFolder(envelope.FolderGame)
	}
}

func (m Model) renderHome(width int) string {
	state := m.view.State

	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n",
		m.styles.title.Render("Playing as "+state.AccountName("Guest")),
		m.styles.muted.Render(state.AccountType("not signed in")))

	line := "Version " + state.EffectiveVersion()
	if state.IsOutdated() {
		line += "  " + m.styles.badge.Render("update: "+state.LatestLabel())
	}

	b.WriteString(line + "\n")
	b.WriteString(m.styles.muted.Render("Latest release: "+state.LatestLabel()) + "\n\n")

	for i, version := range state.VersionChoices() {
		label := fmt.Sprintf("%s (%s)", version.ID, version.Type)
		if version.ID == state.EffectiveVersion() {
			label += " ✓"
		}

		b.WriteString(m.row(i == m.cursors[TabHome], label, width) + "\n")
	}

	b.WriteString("\n")

	if state.Busy {
		b.WriteString(m.spinner.View() + " " + truncate(state.Status, width-2))
	} else {
		b.WriteString(m.styles.success.Render("▶ Press p to play " + state.EffectiveVersion()))
	}

	return b.String()
}
