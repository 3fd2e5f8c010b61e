package tui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/envelope"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/transport"
)

func testState() launcher.State {
	state := launcher.Default()
	state.LatestReleaseID = "1.21.4"
	state.SelectedVersionID = "1.20.1"
	state.Account = &launcher.Account{Username: "Steve", Type: "Microsoft"}
	state.SavedAccounts = []launcher.SavedAccount{
		{Key: "Microsoft:Steve", Username: "Steve", Type: "Microsoft", IsCurrent: true},
	}
	state.LocalAccounts = []string{"Alex"}
	state.Versions = []launcher.Version{
		{ID: "1.21.4", Type: "release"},
		{ID: "1.20.1", Type: "release"},
	}
	state.Status = "Ready"
	state.Mods = []launcher.Mod{
		{ID: "sodium", Name: "Sodium", Version: "0.6.0", Enabled: true, FileName: "sodium.jar"},
	}
	state.Skins = []launcher.Skin{{ID: "s1", Name: "Knight", Variant: "classic"}}
	state.Shop = launcher.Shop{
		Points:          150,
		PointsPerMinute: 5,
		Items: []launcher.ShopItem{
			{ID: "cape_red", Name: "Red Cape", Type: "cape", Price: 100, Owned: true, Equipped: true},
			{ID: "hat_top", Name: "Top Hat", Type: "hat", Price: 500},
			{ID: "cape_blue", Name: "Blue Cape", Type: "cape", Price: 100, Owned: true},
			{ID: "hat_cap", Name: "Cap", Type: "hat", Price: 50},
		},
	}

	return state
}

func newTestModel(t *testing.T, state launcher.State) (Model, *bridge.Session, *transport.Memory) {
	t.Helper()

	host := transport.NewMemory()
	session := bridge.New(host)
	session.Mount(context.Background())
	t.Cleanup(session.Unmount)

	host.Deliver(envelope.StateEnvelope(state))
	host.Reset()

	m := New(session)
	t.Cleanup(m.Close)

	return m, session, host
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}

	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}

	return m
}

func refresh(m Model, session *bridge.Session) Model {
	next, _ := m.Update(viewMsg{view: session.Snapshot()})
	return next.(Model)
}

func TestTabSwitching(t *testing.T) {
	m, _, _ := newTestModel(t, testState())

	m = press(m, "tab")
	if m.tab != TabShop {
		t.Errorf("tab = %s after Tab, want Shop", m.tab)
	}

	m = press(m, "7")
	if m.tab != TabLogs {
		t.Errorf("tab = %s after 7, want Logs", m.tab)
	}

	m = press(m, "tab")
	if m.tab != TabHome {
		t.Errorf("tab = %s after wrapping, want Home", m.tab)
	}
}

func TestHome_PlayAndVersion(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "p", "enter")

	sent := host.Sent()
	if got := host.SentKinds(); !reflect.DeepEqual(got, []string{"play", "set_version"}) {
		t.Fatalf("sent = %v", got)
	}

	if sent[1]["id"] != "1.21.4" {
		t.Errorf("set_version id = %v, want first choice", sent[1]["id"])
	}

	_ = m
}

func TestHome_BusyRefusesPlay(t *testing.T) {
	state := testState()
	state.Busy = true

	m, _, host := newTestModel(t, state)

	m = press(m, "p")

	if len(host.Sent()) != 0 {
		t.Errorf("sent %v while busy", host.SentKinds())
	}

	if m.notice == "" {
		t.Error("no notice while busy")
	}
}

func TestShop_PrimaryActions(t *testing.T) {
	tests := []struct {
		name   string
		downs  int
		want   []string
		notice bool
	}{
		// Display order groups capes first: cape_red, cape_blue, hat_top, hat_cap.
		{"equipped does nothing", 0, nil, false},
		{"owned equips", 1, []string{"shop_equip"}, false},
		{"too expensive", 2, nil, true},
		{"affordable buys", 3, []string{"shop_buy"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, host := newTestModel(t, testState())
			m = press(m, "2")

			for range tt.downs {
				m = press(m, "down")
			}

			m = press(m, "enter")

			got := host.SentKinds()
			if len(got) == 0 {
				got = nil
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sent = %v, want %v", got, tt.want)
			}

			if (m.notice != "") != tt.notice {
				t.Errorf("notice = %q", m.notice)
			}
		})
	}
}

func TestShop_Unequip(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "2", "u")

	sent := host.Sent()
	if len(sent) != 1 || sent[0]["type"] != "shop_unequip" || sent[0]["slot"] != "cape" {
		t.Errorf("sent = %v", sent)
	}

	_ = m
}

func TestMods_ToggleAndConfirmedDelete(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "3", "space", "d", "k", "d", "y")

	sent := host.Sent()
	if got := host.SentKinds(); !reflect.DeepEqual(got, []string{"mod_toggle", "mod_delete"}) {
		t.Fatalf("sent = %v", got)
	}

	if sent[0]["enable"] != false || sent[1]["fileName"] != "sodium.jar" {
		t.Errorf("sent = %v", sent)
	}

	_ = m
}

func TestSkins_AddFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wizard.png")

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatal(err)
	}

	m, _, host := newTestModel(t, testState())

	m = press(m, "4", "A")
	m = typeText(m, path)
	m = press(m, "enter")

	sent := host.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %v", host.SentKinds())
	}

	if sent[0]["name"] != "wizard" || sent[0]["variant"] != "slim" {
		t.Errorf("add_skin = %v", sent[0])
	}

	if url, _ := sent[0]["dataUrl"].(string); !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("dataUrl = %q", url)
	}
}

func TestSkins_SelectRemoveClear(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "4", "enter", "x", "c")

	if got := host.SentKinds(); !reflect.DeepEqual(got, []string{"select_skin", "remove_skin", "clear_skin"}) {
		t.Errorf("sent = %v", got)
	}

	_ = m
}

func TestSettings_DraftAndSave(t *testing.T) {
	m, session, host := newTestModel(t, testState())

	m = press(m, "5")

	// Cursor to "Low-end preset" and toggle, then "Potato preset".
	for range int(fieldLowEndPreset) {
		m = press(m, "down")
	}

	m = press(m, "space", "down", "space")

	if v := m.draft.Value(); v.UseLowEndPreset || !v.UsePotatoPreset {
		t.Errorf("presets lowEnd=%v potato=%v, want potato only", v.UseLowEndPreset, v.UsePotatoPreset)
	}

	if len(host.Sent()) != 0 {
		t.Fatalf("draft edits sent %v", host.SentKinds())
	}

	if session.Snapshot().State.Settings.UsePotatoPreset {
		t.Fatal("draft edit reached the session state")
	}

	m = press(m, "s")

	sent := host.Sent()
	if len(sent) != 1 || sent[0]["type"] != "save_settings" {
		t.Fatalf("sent = %v", host.SentKinds())
	}

	settings, _ := sent[0]["settings"].(map[string]any)
	if settings["usePotatoPreset"] != true {
		t.Errorf("saved settings = %v", settings)
	}
}

func TestSettings_EditRAM(t *testing.T) {
	m, _, _ := newTestModel(t, testState())

	m = press(m, "5")

	for range int(fieldMaxRAM) {
		m = press(m, "down")
	}

	m = press(m, "enter")

	if m.inputFor != inputSettingsField {
		t.Fatal("enter on a text field did not open the input")
	}

	m.input.SetValue("")
	m = typeText(m, "6144")
	m = press(m, "enter")

	if got := m.draft.Value().MaxRAMMb; got != 6144 {
		t.Errorf("MaxRAMMb = %d, want 6144", got)
	}

	if !m.draft.Dirty() {
		t.Error("draft not dirty after edit")
	}
}

func TestSettings_RebaseOnNewSnapshot(t *testing.T) {
	m, session, host := newTestModel(t, testState())

	m = press(m, "5", "down", "down", "space")

	if !m.draft.Dirty() {
		t.Fatal("toggle did not edit the draft")
	}

	changed := testState()
	changed.Settings.GameDirectory = "/srv/minecraft"
	host.Deliver(envelope.StateEnvelope(changed))

	m = refresh(m, session)

	if got := m.draft.Value(); got != changed.Settings {
		t.Errorf("draft = %+v, want rebased onto host settings", got)
	}
}

func TestAccounts(t *testing.T) {
	m, session, host := newTestModel(t, testState())

	m = press(m, "6", "m")

	if got := session.Snapshot().AuthMessage; got != "Starting Microsoft login..." {
		t.Errorf("AuthMessage = %q", got)
	}

	m = press(m, "l")
	m = typeText(m, "  Notch ")
	m = press(m, "enter")

	m = press(m, "enter", "down", "enter")

	sent := host.Sent()
	if got := host.SentKinds(); !reflect.DeepEqual(got, []string{"login_microsoft", "login_local", "select_account", "login_local"}) {
		t.Fatalf("sent = %v", got)
	}

	if sent[1]["username"] != "Notch" || sent[2]["key"] != "Microsoft:Steve" || sent[3]["username"] != "Alex" {
		t.Errorf("sent = %v", sent)
	}
}

func TestAccounts_BlankLocalLogin(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "6", "l", "enter")

	if len(host.Sent()) != 0 {
		t.Errorf("sent = %v", host.SentKinds())
	}

	if m.notice == "" {
		t.Error("no notice for blank username")
	}
}

func TestInputSwallowsShortcuts(t *testing.T) {
	m, _, host := newTestModel(t, testState())

	m = press(m, "6", "l")
	m = typeText(m, "pq")

	if m.tab != TabAccounts || m.inputFor != inputLocalLogin {
		t.Fatal("typing in the input triggered shortcuts")
	}

	m = press(m, "esc")

	if len(host.Sent()) != 0 {
		t.Errorf("sent = %v", host.SentKinds())
	}
}

func TestView_Render(t *testing.T) {
	m, _, _ := newTestModel(t, testState())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	out := m.View()

	for _, want := range []string{"Home", "Shop", "Logs", "Steve", "update: 1.21.4", "[live]", "Ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_StripsHostEscapes(t *testing.T) {
	state := testState()
	state.Status = "\x1b]0;owned\x07\x1b[31mReady\x1b[0m"

	m, _, _ := newTestModel(t, state)

	out := m.View()
	if strings.Contains(out, "owned") || strings.Contains(out, "\x1b[31m") {
		t.Errorf("view kept host escape sequences:\n%q", out)
	}

	if !strings.Contains(out, "Ready") {
		t.Errorf("view lost the status text:\n%s", out)
	}
}

func TestView_StandalonePreview(t *testing.T) {
	session := bridge.New(transport.Standalone{})
	session.Mount(context.Background())

	m := New(session)
	t.Cleanup(m.Close)

	if out := m.View(); !strings.Contains(out, "[preview]") {
		t.Errorf("standalone view lacks preview badge:\n%s", out)
	}
}

func TestHostLost(t *testing.T) {
	m, _, _ := newTestModel(t, testState())

	next, _ := m.Update(HostLostMsg{})
	m = next.(Model)

	if !strings.Contains(m.View(), "[disconnected]") {
		t.Error("view does not show the lost host")
	}
}

func TestViewFeed_KeepsNewest(t *testing.T) {
	feed := newViewFeed()

	feed.push(bridge.View{Logs: []string{"1"}})
	feed.push(bridge.View{Logs: []string{"2"}})
	feed.push(bridge.View{Logs: []string{"3"}})

	got := <-feed.ch
	if !reflect.DeepEqual(got.Logs, []string{"3"}) {
		t.Errorf("feed delivered %v, want newest", got.Logs)
	}

	select {
	case v := <-feed.ch:
		t.Errorf("feed kept a stale view %v", v.Logs)
	default:
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語テキスト", 5, "日本…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
