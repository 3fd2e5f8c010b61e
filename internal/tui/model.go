// Package tui is the interactive terminal front-end for a bridge session.
//
// The model never mutates launcher state. It renders the session's latest
// View, turns key presses into intents and keeps only presentation state of
// its own: the active tab, cursors, the settings draft and text inputs.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/draft"
	"github.com/amc-launcher/amcui/internal/intent"
	"github.com/amc-launcher/amcui/internal/terminal"
)

// Tab identifies a screen.
type Tab int

const (
	TabHome Tab = iota
	TabShop
	TabMods
	TabSkins
	TabSettings
	TabAccounts
	TabLogs
	tabCount
)

var tabNames = [...]string{"Home", "Shop", "Mods", "Skins", "Settings", "Accounts", "Logs"}

func (t Tab) String() string { return tabNames[t] }

// Session is the part of a bridge session the front-end uses.
type Session interface {
	intent.Sink
	Snapshot() bridge.View
	Subscribe(fn bridge.Listener) func()
	SetAuthMessage(message string)
	HostPresent() bool
}

// viewMsg carries a new session view into the update loop.
type viewMsg struct{ view bridge.View }

// HostLostMsg tells the model the host went away.
type HostLostMsg struct{}

// inputPurpose says what the open text input is for.
type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputLocalLogin
	inputSkinPath
	inputSettingsField
)

// Model is the bubbletea model.
type Model struct {
	session Session
	sender  *intent.Sender
	views   *viewFeed
	keys    KeyMap
	styles  styles

	view     bridge.View
	tab      Tab
	cursors  [tabCount]int
	width    int
	height   int
	notice   string
	hostLost bool

	draft *draft.Draft

	input        textinput.Model
	inputFor     inputPurpose
	skinVariant  string
	pendingMod   string
	settingField settingField

	spinner spinner.Model
	logs    viewport.Model
}

// New builds a model for session and subscribes to its views. Call Close
// when the program ends.
func New(session Session) Model {
	feed := newViewFeed()
	feed.unsubscribe = session.Subscribe(feed.push)

	view := session.Snapshot()

	input := textinput.New()
	input.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		session: session,
		sender:  intent.New(session),
		views:   feed,
		keys:    DefaultKeyMap,
		styles:  newStyles(DefaultTheme),
		view:    view,
		draft:   draft.New(view.State.Settings),
		input:   input,
		spinner: spin,
		logs:    viewport.New(80, 20),
	}
	m.syncLogs()

	return m
}

// Close stops listening to the session.
func (m Model) Close() {
	m.views.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForView(m.views.ch), m.spinner.Tick)
}

// waitForView blocks until the session publishes a view.
func waitForView(ch <-chan bridge.View) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-ch
		if !ok {
			return nil
		}

		return viewMsg{view: view}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputFor != inputNone {
			return m.updateInput(msg)
		}

		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logs.Width = msg.Width
		m.logs.Height = max(msg.Height-6, 3)
		m.syncLogs()

	case viewMsg:
		m.applyView(msg.view)
		return m, waitForView(m.views.ch)

	case HostLostMsg:
		m.hostLost = true
		m.notice = "Host disconnected"

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) applyView(view bridge.View) {
	m.view = view
	m.draft.Rebase(view.State.Settings)
	m.syncLogs()
	m.clampCursors()
}

func (m *Model) syncLogs() {
	atBottom := m.logs.AtBottom() || m.logs.TotalLineCount() == 0
	m.logs.SetContent(joinLines(terminal.SanitizeLines(m.view.Logs)))

	if atBottom {
		m.logs.GotoBottom()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.tab + 1) % tabCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab((m.tab + tabCount - 1) % tabCount)
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '7' {
		m.switchTab(Tab(msg.Runes[0] - '1'))
		return m, nil
	}

	if m.tab != TabLogs {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		}
	}

	var cmd tea.Cmd

	switch m.tab {
	case TabHome:
		m.handleHomeKey(msg)
	case TabShop:
		m.handleShopKey(msg)
	case TabMods:
		m.handleModsKey(msg)
	case TabSkins:
		cmd = m.handleSkinsKey(msg)
	case TabSettings:
		cmd = m.handleSettingsKey(msg)
	case TabAccounts:
		cmd = m.handleAccountsKey(msg)
	case TabLogs:
		m.logs, cmd = m.logs.Update(msg)
	}

	return m, cmd
}

func (m *Model) switchTab(tab Tab) {
	m.tab = tab
	m.notice = ""
	m.pendingMod = ""
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount(m.tab)
	if n == 0 {
		return
	}

	m.cursors[m.tab] = (m.cursors[m.tab] + delta + n) % n
	m.pendingMod = ""
}

func (m *Model) clampCursors() {
	for tab := range tabCount {
		n := m.rowCount(tab)
		if m.cursors[tab] >= n {
			m.cursors[tab] = max(n-1, 0)
		}
	}
}

func (m Model) rowCount(tab Tab) int {
	state := m.view.State

	switch tab {
	case TabHome:
		return len(state.VersionChoices())
	case TabShop:
		return len(state.Shop.Items)
	case TabMods:
		return len(state.Mods)
	case TabSkins:
		return len(state.Skins)
	case TabSettings:
		return len(settingFields)
	case TabAccounts:
		return len(state.SavedAccounts) + len(state.LocalAccounts)
	default:
		return 0
	}
}

func (m *Model) openInput(purpose inputPurpose, placeholder, value string) tea.Cmd {
	m.inputFor = purpose
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()

	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputFor = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		purpose := m.inputFor
		m.closeInput()
		m.submitInput(purpose, value)

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) submitInput(purpose inputPurpose, value string) {
	switch purpose {
	case inputLocalLogin:
		if !m.sender.LoginLocal(value) {
			m.notice = "Enter a username"
		}
	case inputSkinPath:
		m.addSkinFromFile(value)
	case inputSettingsField:
		m.setSettingText(m.settingField, value)
	case inputNone:
	}
}

// viewFeed hands session views to the update loop. It keeps only the
// newest undelivered view so the session never waits on rendering.
type viewFeed struct {
	ch          chan bridge.View
	unsubscribe func()
}

func newViewFeed() *viewFeed {
	return &viewFeed{ch: make(chan bridge.View, 1)}
}

func (f *viewFeed) push(view bridge.View) {
	for {
		select {
		case f.ch <- view:
			return
		default:
		}

		select {
		case <-f.ch:
		default:
		}
	}
}

func (f *viewFeed) close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
}
