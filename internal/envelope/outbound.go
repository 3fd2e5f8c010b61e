package envelope

import "github.com/amc-launcher/amcui/internal/launcher"

// Intent is an outbound request to the host. Sending an intent guarantees
// neither delivery nor a reply; its effect, if any, arrives later as a state
// update.
type Intent interface {
	Kind() Kind
	fill(env Envelope)
}

// FolderKind names a folder the host can open.
type FolderKind string

// Folders the host knows how to open.
const (
	FolderGame          FolderKind = "game"
	FolderMods          FolderKind = "mods"
	FolderResourcePacks FolderKind = "resourcepacks"
	FolderConfig        FolderKind = "config"
)

// Valid reports whether the host recognizes the folder kind.
func (f FolderKind) Valid() bool {
	switch f {
	case FolderGame, FolderMods, FolderResourcePacks, FolderConfig:
		return true
	default:
		return false
	}
}

type (
	// UIReady announces that the UI is mounted and listening.
	UIReady struct{}
	// GetState asks the host for a full snapshot.
	GetState struct{}
	// SelectAccount switches to a saved account.
	SelectAccount struct{ Key string }
	// LoginMicrosoft starts the Microsoft sign-in flow.
	LoginMicrosoft struct{}
	// LoginLocal signs in with an offline username.
	LoginLocal struct{ Username string }
	// Play launches the selected version.
	Play struct{}
	// SetVersion selects the version to launch.
	SetVersion struct{ ID string }
	// SaveSettings commits a settings draft.
	SaveSettings struct{ Settings launcher.Settings }
	// BrowseGameDir opens the host's game directory picker.
	BrowseGameDir struct{}
	// BrowseJava opens the host's Java executable picker.
	BrowseJava struct{}
	// TryMachine asks the host to probe the machine and pick presets.
	TryMachine struct{}
	// InstallAMCMod installs or updates the cosmetics mod.
	InstallAMCMod struct{}
	// OpenFolder opens a game folder in the file manager.
	OpenFolder struct{ Folder FolderKind }
	// ModRefresh rescans the mods folder.
	ModRefresh struct{}
	// ModToggle enables or disables a mod jar.
	ModToggle struct {
		FileName string
		Enable   bool
	}
	// ModDelete deletes a mod jar.
	ModDelete struct{ FileName string }
	// AddSkin uploads a skin image.
	AddSkin struct {
		Name    string
		DataURL string
		Variant string
	}
	// SelectSkin applies a skin.
	SelectSkin struct{ ID string }
	// RemoveSkin deletes a skin.
	RemoveSkin struct{ ID string }
	// ClearSkin clears the skin selection.
	ClearSkin struct{}
	// ShopBuy purchases a shop item.
	ShopBuy struct{ ID string }
	// ShopEquip equips an owned shop item.
	ShopEquip struct{ ID string }
	// ShopUnequip empties the slot of an item type.
	ShopUnequip struct{ Slot string }
)

func (UIReady) Kind() Kind        { return KindUIReady }
func (GetState) Kind() Kind       { return KindGetState }
func (SelectAccount) Kind() Kind  { return KindSelectAccount }
func (LoginMicrosoft) Kind() Kind { return KindLoginMS }
func (LoginLocal) Kind() Kind     { return KindLoginLocal }
func (Play) Kind() Kind           { return KindPlay }
func (SetVersion) Kind() Kind     { return KindSetVersion }
func (SaveSettings) Kind() Kind   { return KindSaveSettings }
func (BrowseGameDir) Kind() Kind  { return KindBrowseGameDir }
func (BrowseJava) Kind() Kind     { return KindBrowseJava }
func (TryMachine) Kind() Kind     { return KindTryMachine }
func (InstallAMCMod) Kind() Kind  { return KindInstallAMCMod }
func (OpenFolder) Kind() Kind     { return KindOpenFolder }
func (ModRefresh) Kind() Kind     { return KindModRefresh }
func (ModToggle) Kind() Kind      { return KindModToggle }
func (ModDelete) Kind() Kind      { return KindModDelete }
func (AddSkin) Kind() Kind        { return KindAddSkin }
func (SelectSkin) Kind() Kind     { return KindSelectSkin }
func (RemoveSkin) Kind() Kind     { return KindRemoveSkin }
func (ClearSkin) Kind() Kind      { return KindClearSkin }
func (ShopBuy) Kind() Kind        { return KindShopBuy }
func (ShopEquip) Kind() Kind      { return KindShopEquip }
func (ShopUnequip) Kind() Kind    { return KindShopUnequip }

func (UIReady) fill(Envelope)        {}
func (GetState) fill(Envelope)       {}
func (LoginMicrosoft) fill(Envelope) {}
func (Play) fill(Envelope)           {}
func (BrowseGameDir) fill(Envelope)  {}
func (BrowseJava) fill(Envelope)     {}
func (TryMachine) fill(Envelope)     {}
func (InstallAMCMod) fill(Envelope)  {}
func (ModRefresh) fill(Envelope)     {}
func (ClearSkin) fill(Envelope)      {}

func (i SelectAccount) fill(env Envelope) { env["key"] = i.Key }
func (i LoginLocal) fill(env Envelope)    { env["username"] = i.Username }
func (i SetVersion) fill(env Envelope)    { env["id"] = i.ID }
func (i SaveSettings) fill(env Envelope)  { env["settings"] = i.Settings }
func (i OpenFolder) fill(env Envelope)    { env["kind"] = string(i.Folder) }
func (i ModDelete) fill(env Envelope)     { env["fileName"] = i.FileName }
func (i SelectSkin) fill(env Envelope)    { env["id"] = i.ID }
func (i RemoveSkin) fill(env Envelope)    { env["id"] = i.ID }
func (i ShopBuy) fill(env Envelope)       { env["id"] = i.ID }
func (i ShopEquip) fill(env Envelope)     { env["id"] = i.ID }
func (i ShopUnequip) fill(env Envelope)   { env["slot"] = i.Slot }

func (i ModToggle) fill(env Envelope) {
	env["fileName"] = i.FileName
	env["enable"] = i.Enable
}

func (i AddSkin) fill(env Envelope) {
	env["name"] = i.Name
	env["dataUrl"] = i.DataURL
	env["variant"] = i.Variant
}

// FromIntent builds the wire record for an intent.
func FromIntent(intent Intent) Envelope {
	env := Envelope{TypeField: string(intent.Kind())}
	intent.fill(env)

	return env
}
