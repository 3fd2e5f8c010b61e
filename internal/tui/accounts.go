package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/terminal"
)

func (m *Model) handleAccountsKey(msg tea.KeyMsg) tea.Cmd {
	state := m.view.State

	switch {
	case key.Matches(msg, m.keys.LoginMicrosoft):
		m.session.SetAuthMessage("Starting Microsoft login...")
		m.sender.LoginMicrosoft()
	case key.Matches(msg, m.keys.LoginLocal):
		return m.openInput(inputLocalLogin, "offline username", "")
	case key.Matches(msg, m.keys.Select):
		cursor := m.cursors[TabAccounts]

		switch {
		case cursor < len(state.SavedAccounts):
			m.sender.SelectAccount(state.SavedAccounts[cursor].Key)
		case cursor-len(state.SavedAccounts) < len(state.LocalAccounts):
			m.sender.LoginLocal(state.LocalAccounts[cursor-len(state.SavedAccounts)])
		}
	}

	return nil
}

func (m Model) renderAccounts(width int) string {
	state := m.view.State

	var b strings.Builder

	b.WriteString(m.styles.title.Render("Signed in: "+state.AccountName("nobody")) + "\n\n")

	row := 0

	if len(state.SavedAccounts) > 0 {
		b.WriteString(m.styles.muted.Render("Saved accounts") + "\n")

		for _, account := range state.SavedAccounts {
			kind := "offline"
			if launcher.IsMicrosoftAccount(account.Type) {
				kind = "Microsoft"
			}

			label := account.Username + "  (" + kind + ")"
			if account.IsCurrent {
				label += " ✓"
			}

			b.WriteString(m.row(row == m.cursors[TabAccounts], label, width) + "\n")
			row++
		}
	}

	if len(state.LocalAccounts) > 0 {
		b.WriteString("\n" + m.styles.muted.Render("Offline names") + "\n")

		for _, name := range state.LocalAccounts {
			b.WriteString(m.row(row == m.cursors[TabAccounts], name, width) + "\n")
			row++
		}
	}

	if m.view.AuthMessage != "" {
		b.WriteString("\n" + m.styles.warning.Render(truncate(terminal.Sanitize(m.view.AuthMessage), width)) + "\n")
	}

	return b.String()
}
