package envelope

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/launcher"
)

func TestFromIntent_WireShape(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   string
	}{
		{name: "ui ready", intent: UIReady{}, want: `{"type":"ui_ready"}`},
		{name: "get state", intent: GetState{}, want: `{"type":"get_state"}`},
		{name: "select account", intent: SelectAccount{Key: "Microsoft:Steve"}, want: `{"key":"Microsoft:Steve","type":"select_account"}`},
		{name: "login local", intent: LoginLocal{Username: "Builder42"}, want: `{"type":"login_local","username":"Builder42"}`},
		{name: "set version", intent: SetVersion{ID: "1.20.2"}, want: `{"id":"1.20.2","type":"set_version"}`},
		{name: "open folder", intent: OpenFolder{Folder: FolderResourcePacks}, want: `{"kind":"resourcepacks","type":"open_folder"}`},
		{name: "mod toggle", intent: ModToggle{FileName: "sodium.jar"}, want: `{"enable":false,"fileName":"sodium.jar","type":"mod_toggle"}`},
		{name: "mod delete", intent: ModDelete{FileName: "sodium.jar"}, want: `{"fileName":"sodium.jar","type":"mod_delete"}`},
		{
			name:   "add skin",
			intent: AddSkin{Name: "Explorer", DataURL: "data:image/png;base64,AA==", Variant: "slim"},
			want:   `{"dataUrl":"data:image/png;base64,AA==","name":"Explorer","type":"add_skin","variant":"slim"}`,
		},
		{name: "select skin", intent: SelectSkin{ID: "skin-1"}, want: `{"id":"skin-1","type":"select_skin"}`},
		{name: "remove skin", intent: RemoveSkin{ID: "skin-1"}, want: `{"id":"skin-1","type":"remove_skin"}`},
		{name: "clear skin", intent: ClearSkin{}, want: `{"type":"clear_skin"}`},
		{name: "shop buy", intent: ShopBuy{ID: "cape_aurora"}, want: `{"id":"cape_aurora","type":"shop_buy"}`},
		{name: "shop equip", intent: ShopEquip{ID: "cape_aurora"}, want: `{"id":"cape_aurora","type":"shop_equip"}`},
		{name: "shop unequip", intent: ShopUnequip{Slot: "cape"}, want: `{"slot":"cape","type":"shop_unequip"}`},
		{name: "play", intent: Play{}, want: `{"type":"play"}`},
		{name: "try machine", intent: TryMachine{}, want: `{"type":"try_machine"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(codec.JSON, FromIntent(tt.intent))
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			if string(data) != tt.want {
				t.Errorf("wire = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestFromIntent_SaveSettingsCarriesRecord(t *testing.T) {
	settings := launcher.Default().Settings
	settings.MaxRAMMb = 4096

	data, err := Encode(codec.JSON, FromIntent(SaveSettings{Settings: settings}))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded struct {
		Type     string            `json:"type"`
		Settings launcher.Settings `json:"settings"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Type != "save_settings" || decoded.Settings != settings {
		t.Errorf("decoded = %+v, want save_settings with %+v", decoded, settings)
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		args    map[string]string
		want    Intent
		wantErr bool
	}{
		{name: "play", kind: "play", want: Play{}},
		{name: "play with stray arg", kind: "play", args: map[string]string{"x": "1"}, wantErr: true},
		{name: "select skin", kind: "select_skin", args: map[string]string{"id": "skin-1"}, want: SelectSkin{ID: "skin-1"}},
		{name: "select skin without id", kind: "select_skin", wantErr: true},
		{name: "open folder", kind: "open_folder", args: map[string]string{"kind": "mods"}, want: OpenFolder{Folder: FolderMods}},
		{name: "open unknown folder", kind: "open_folder", args: map[string]string{"kind": "saves"}, wantErr: true},
		{
			name: "mod toggle",
			kind: "mod_toggle",
			args: map[string]string{"fileName": "sodium.jar", "enable": "true"},
			want: ModToggle{FileName: "sodium.jar", Enable: true},
		},
		{name: "mod toggle bad bool", kind: "mod_toggle", args: map[string]string{"fileName": "a", "enable": "maybe"}, wantErr: true},
		{
			name: "add skin defaults variant",
			kind: "add_skin",
			args: map[string]string{"dataUrl": "data:x", "name": "n"},
			want: AddSkin{Name: "n", DataURL: "data:x", Variant: "classic"},
		},
		{
			name: "save settings",
			kind: "save_settings",
			args: map[string]string{"settings": `{"maxRamMb":4096}`},
			want: SaveSettings{Settings: launcher.Settings{MaxRAMMb: 4096}},
		},
		{name: "inbound kind", kind: "status", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntent(tt.kind, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseIntent() = %#v, want error", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseIntent() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("ParseIntent() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseIntent_UnknownKindIsTyped(t *testing.T) {
	_, err := ParseIntent("fly", nil)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseIntent(fly) error = %v, want ErrUnknownKind", err)
	}
}

func TestIntentKinds_CoverOutboundVocabulary(t *testing.T) {
	kinds := IntentKinds()

	if len(kinds) != 23 {
		t.Errorf("len(IntentKinds()) = %d, want 23", len(kinds))
	}

	if !slices.IsSorted(kinds) {
		t.Error("IntentKinds() is not sorted")
	}

	for _, want := range []string{"ui_ready", "save_settings", "shop_unequip", "add_skin"} {
		if !slices.Contains(kinds, want) {
			t.Errorf("IntentKinds() missing %q", want)
		}
	}
}
