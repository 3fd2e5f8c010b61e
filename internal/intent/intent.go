// Package intent offers one fire-and-forget call per user action.
//
// Every call produces exactly one outbound envelope, or none when the
// action is refused locally (an empty username, an item that needs no
// action, a launch while busy). No call waits for the host or reports what
// the host did with the intent; results arrive later as state.
package intent

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/amc-launcher/amcui/internal/envelope"
	"github.com/amc-launcher/amcui/internal/launcher"
)

// Skin defaults applied by AddSkin.
const (
	DefaultSkinName    = "New Skin"
	DefaultSkinVariant = "classic"
	SlimSkinVariant    = "slim"
	skinDataURLPrefix  = "data:image/png;base64,"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Sink accepts outbound intents. *bridge.Session satisfies it.
type Sink interface {
	Send(intent envelope.Intent)
}

// Sender maps user actions to intents.
type Sender struct {
	sink Sink
}

// New returns a Sender writing to sink.
func New(sink Sink) *Sender {
	return &Sender{sink: sink}
}

func (s *Sender) send(intent envelope.Intent) {
	s.sink.Send(intent)
}

func (s *Sender) UIReady()                 { s.send(envelope.UIReady{}) }
func (s *Sender) RequestState()            { s.send(envelope.GetState{}) }
func (s *Sender) SelectAccount(key string) { s.send(envelope.SelectAccount{Key: key}) }
func (s *Sender) LoginMicrosoft()          { s.send(envelope.LoginMicrosoft{}) }
func (s *Sender) Play()                    { s.send(envelope.Play{}) }
func (s *Sender) SetVersion(id string)     { s.send(envelope.SetVersion{ID: id}) }
func (s *Sender) BrowseGameDir()           { s.send(envelope.BrowseGameDir{}) }
func (s *Sender) BrowseJava()              { s.send(envelope.BrowseJava{}) }
func (s *Sender) TryMachine()              { s.send(envelope.TryMachine{}) }
func (s *Sender) InstallAMCMod()           { s.send(envelope.InstallAMCMod{}) }
func (s *Sender) RefreshMods()             { s.send(envelope.ModRefresh{}) }
func (s *Sender) DeleteMod(fileName string) {
	s.send(envelope.ModDelete{FileName: fileName})
}
func (s *Sender) SelectSkin(id string) { s.send(envelope.SelectSkin{ID: id}) }
func (s *Sender) RemoveSkin(id string) { s.send(envelope.RemoveSkin{ID: id}) }
func (s *Sender) ClearSkin()           { s.send(envelope.ClearSkin{}) }
func (s *Sender) Buy(id string)        { s.send(envelope.ShopBuy{ID: id}) }
func (s *Sender) Equip(id string)      { s.send(envelope.ShopEquip{ID: id}) }
func (s *Sender) Unequip(slot string)  { s.send(envelope.ShopUnequip{Slot: slot}) }

// SaveSettings sends settings as the new authoritative value.
func (s *Sender) SaveSettings(settings launcher.Settings) {
	s.send(envelope.SaveSettings{Settings: settings})
}

// OpenFolder asks the host to reveal folder. Unknown folder kinds are
// ignored.
func (s *Sender) OpenFolder(folder envelope.FolderKind) bool {
	if !folder.Valid() {
		return false
	}

	s.send(envelope.OpenFolder{Folder: folder})

	return true
}

// LoginLocal signs in offline. Blank usernames send nothing.
func (s *Sender) LoginLocal(username string) bool {
	username = strings.TrimSpace(username)
	if username == "" {
		return false
	}

	s.send(envelope.LoginLocal{Username: username})

	return true
}

// PlayOrBusy launches unless the host reports it is busy.
func (s *Sender) PlayOrBusy(state launcher.State) bool {
	if state.Busy {
		return false
	}

	s.Play()

	return true
}

// ToggleMod flips the enabled flag of mod.
func (s *Sender) ToggleMod(mod launcher.Mod) {
	s.send(envelope.ModToggle{FileName: mod.FileName, Enable: !mod.Enabled})
}

// ShopAction performs the primary action for item: buy it when not owned,
// equip it when owned and not equipped. It reports the action taken.
func (s *Sender) ShopAction(item launcher.ShopItem) launcher.ItemAction {
	action := item.Action()

	switch action {
	case launcher.ActionBuy:
		s.Buy(item.ID)
	case launcher.ActionEquip:
		s.Equip(item.ID)
	case launcher.ActionNone:
	}

	return action
}

// AddSkin uploads png as a skin. An empty name becomes DefaultSkinName and
// an unknown variant becomes DefaultSkinVariant. Data that is not a PNG
// image sends nothing.
func (s *Sender) AddSkin(name string, png []byte, variant string) bool {
	if !IsPNG(png) {
		return false
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultSkinName
	}

	if variant != SlimSkinVariant {
		variant = DefaultSkinVariant
	}

	s.send(envelope.AddSkin{Name: name, DataURL: SkinDataURL(png), Variant: variant})

	return true
}

// SkinDataURL encodes png as a data URL.
func SkinDataURL(png []byte) string {
	return skinDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}
