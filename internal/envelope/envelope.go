// Package envelope defines the messages exchanged with the launcher host.
//
// On the wire every message is an open record with a string "type" field and
// kind-specific payload fields. Inbound records are narrowed into a closed set
// of typed messages before they reach reconciliation; anything that does not
// narrow is rejected with an error wrapping ErrUnknownKind or ErrMalformed.
// Outbound messages are typed intents encoded back into records.
package envelope

import (
	"errors"
	"fmt"

	"github.com/amc-launcher/amcui/internal/codec"
)

// Kind is the value of an envelope's "type" field.
type Kind string

// Inbound kinds (host → UI).
const (
	KindState       Kind = "state"
	KindStatus      Kind = "status"
	KindAuthMessage Kind = "auth_message"
	KindAuthClear   Kind = "auth_clear"
	KindLog         Kind = "log"
	KindLogHistory  Kind = "log_history"
)

// Outbound kinds (UI → host).
const (
	KindUIReady       Kind = "ui_ready"
	KindGetState      Kind = "get_state"
	KindSelectAccount Kind = "select_account"
	KindLoginMS       Kind = "login_microsoft"
	KindLoginLocal    Kind = "login_local"
	KindPlay          Kind = "play"
	KindSetVersion    Kind = "set_version"
	KindSaveSettings  Kind = "save_settings"
	KindBrowseGameDir Kind = "browse_game_dir"
	KindBrowseJava    Kind = "browse_java"
	KindTryMachine    Kind = "try_machine"
	KindInstallAMCMod Kind = "install_amc_mod"
	KindOpenFolder    Kind = "open_folder"
	KindModRefresh    Kind = "mod_refresh"
	KindModToggle     Kind = "mod_toggle"
	KindModDelete     Kind = "mod_delete"
	KindAddSkin       Kind = "add_skin"
	KindSelectSkin    Kind = "select_skin"
	KindRemoveSkin    Kind = "remove_skin"
	KindClearSkin     Kind = "clear_skin"
	KindShopBuy       Kind = "shop_buy"
	KindShopEquip     Kind = "shop_equip"
	KindShopUnequip   Kind = "shop_unequip"
)

// TypeField is the discriminator key of every envelope.
const TypeField = "type"

var (
	// ErrUnknownKind marks an envelope whose type is not part of the inbound vocabulary.
	ErrUnknownKind = errors.New("unknown envelope type")
	// ErrMalformed marks an envelope that is not a record or whose payload has the wrong shape.
	ErrMalformed = errors.New("malformed envelope")
)

// Envelope is a wire record: "type" plus payload fields.
type Envelope map[string]any

// Kind returns the envelope type, and false when it is missing or not a string.
func (e Envelope) Kind() (Kind, bool) {
	value, ok := e[TypeField].(string)
	if !ok {
		return "", false
	}

	return Kind(value), true
}

// Decode parses one frame into an envelope. Frames that are not a record
// (arrays, scalars, null) fail with ErrMalformed.
func Decode(c codec.Codec, data []byte) (Envelope, error) {
	var env Envelope
	if err := c.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s frame: %w", ErrMalformed, c.Name(), err)
	}

	if env == nil {
		return nil, fmt.Errorf("%w: frame is not a record", ErrMalformed)
	}

	return env, nil
}

// Encode serializes an envelope with the given codec.
func Encode(c codec.Codec, env Envelope) ([]byte, error) {
	data, err := c.Marshal(map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", c.Name(), err)
	}

	return data, nil
}

// DropReason classifies a rejected envelope for drop counters.
func DropReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownKind):
		return "unknown_kind"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "other"
	}
}
