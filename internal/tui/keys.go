package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the front-end key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Select  key.Binding
	Toggle  key.Binding
	Cancel  key.Binding
	Quit    key.Binding

	// Home
	Play       key.Binding
	GameFolder key.Binding

	// Shop
	Unequip key.Binding

	// Mods
	Refresh    key.Binding
	Delete     key.Binding
	Confirm    key.Binding
	ModsFolder key.Binding
	InstallMod key.Binding

	// Skins
	AddSkin     key.Binding
	AddSlimSkin key.Binding
	RemoveSkin  key.Binding
	ClearSkin   key.Binding

	// Settings
	Save          key.Binding
	Reset         key.Binding
	BrowseGameDir key.Binding
	BrowseJava    key.Binding
	TryMachine    key.Binding

	// Accounts
	LoginMicrosoft key.Binding
	LoginLocal     key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("Tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("S-Tab", "prev tab")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "select")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("Space", "toggle")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	Play:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
	GameFolder: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "game folder")),

	Unequip: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unequip slot")),

	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Confirm:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	ModsFolder: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "mods folder")),
	InstallMod: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install AMC mod")),

	AddSkin:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add skin")),
	AddSlimSkin: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add slim skin")),
	RemoveSkin:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	ClearSkin:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),

	Save:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Reset:         key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "discard edits")),
	BrowseGameDir: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "browse game dir")),
	BrowseJava:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "browse java")),
	TryMachine:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "detect presets")),

	LoginMicrosoft: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Microsoft login")),
	LoginLocal:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "offline login")),
}
