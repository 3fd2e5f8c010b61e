package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/terminal"
)

const defaultWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var body string

	switch m.tab {
	case TabHome:
		body = m.renderHome(width)
	case TabShop:
		body = m.renderShop(width)
	case TabMods:
		body = m.renderMods(width)
	case TabSkins:
		body = m.renderSkins(width)
	case TabSettings:
		body = m.renderSettings(width)
	case TabAccounts:
		body = m.renderAccounts(width)
	case TabLogs:
		body = m.logs.View()
	}

	sections := []string{m.renderTabs(), "", body}

	if m.inputFor != inputNone {
		sections = append(sections, "", m.input.View())
	}

	sections = append(sections, m.renderStatusBar(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)

	for tab := range tabCount {
		if tab == m.tab {
			tabs = append(tabs, m.styles.tabActive.Render(tab.String()))
		} else {
			tabs = append(tabs, m.styles.tabInactive.Render(tab.String()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar(width int) string {
	mode := modeLabel(m.view.Mode)
	if m.hostLost {
		mode = "disconnected"
	}

	left := "[" + mode + "] "

	status := terminal.Sanitize(m.view.State.Status)
	if m.notice != "" {
		status = m.notice
	}

	line := left + truncate(status, width-runewidth.StringWidth(left))

	return m.styles.statusBar.Width(width).Render(line)
}

func modeLabel(mode bridge.Mode) string {
	switch mode {
	case bridge.ModeStandalone:
		return "preview"
	case bridge.ModeAwaitingSnapshot:
		return "connecting"
	case bridge.ModeLive:
		return "live"
	default:
		return string(mode)
	}
}

// row renders one list row, highlighted when selected.
func (m Model) row(selected bool, label string, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	line := prefix + truncate(label, width-2)
	if selected {
		return m.styles.selected.Render(line)
	}

	return line
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.Truncate(s, width, "…")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
