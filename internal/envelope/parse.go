package envelope

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/amc-launcher/amcui/internal/launcher"
)

// intentParsers build intents from string arguments, keyed by kind.
var intentParsers = map[Kind]func(args map[string]string) (Intent, error){
	KindUIReady:       noArgs(UIReady{}),
	KindGetState:      noArgs(GetState{}),
	KindLoginMS:       noArgs(LoginMicrosoft{}),
	KindPlay:          noArgs(Play{}),
	KindBrowseGameDir: noArgs(BrowseGameDir{}),
	KindBrowseJava:    noArgs(BrowseJava{}),
	KindTryMachine:    noArgs(TryMachine{}),
	KindInstallAMCMod: noArgs(InstallAMCMod{}),
	KindModRefresh:    noArgs(ModRefresh{}),
	KindClearSkin:     noArgs(ClearSkin{}),
	KindSelectAccount: oneArg("key", func(v string) Intent { return SelectAccount{Key: v} }),
	KindLoginLocal:    oneArg("username", func(v string) Intent { return LoginLocal{Username: v} }),
	KindSetVersion:    oneArg("id", func(v string) Intent { return SetVersion{ID: v} }),
	KindModDelete:     oneArg("fileName", func(v string) Intent { return ModDelete{FileName: v} }),
	KindSelectSkin:    oneArg("id", func(v string) Intent { return SelectSkin{ID: v} }),
	KindRemoveSkin:    oneArg("id", func(v string) Intent { return RemoveSkin{ID: v} }),
	KindShopBuy:       oneArg("id", func(v string) Intent { return ShopBuy{ID: v} }),
	KindShopEquip:     oneArg("id", func(v string) Intent { return ShopEquip{ID: v} }),
	KindShopUnequip:   oneArg("slot", func(v string) Intent { return ShopUnequip{Slot: v} }),
	KindOpenFolder: func(args map[string]string) (Intent, error) {
		value, err := require(args, "kind")
		if err != nil {
			return nil, err
		}

		folder := FolderKind(value)
		if !folder.Valid() {
			return nil, fmt.Errorf("unknown folder kind %q (allowed: game, mods, resourcepacks, config)", value)
		}

		return OpenFolder{Folder: folder}, nil
	},
	KindModToggle: func(args map[string]string) (Intent, error) {
		fileName, err := require(args, "fileName")
		if err != nil {
			return nil, err
		}

		raw, err := require(args, "enable")
		if err != nil {
			return nil, err
		}

		enable, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("enable must be true or false, got %q", raw)
		}

		return ModToggle{FileName: fileName, Enable: enable}, nil
	},
	KindAddSkin: func(args map[string]string) (Intent, error) {
		dataURL, err := require(args, "dataUrl")
		if err != nil {
			return nil, err
		}

		variant := args["variant"]
		if variant == "" {
			variant = "classic"
		}

		return AddSkin{Name: args["name"], DataURL: dataURL, Variant: variant}, nil
	},
	KindSaveSettings: func(args map[string]string) (Intent, error) {
		raw, err := require(args, "settings")
		if err != nil {
			return nil, err
		}

		var settings launcher.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return nil, fmt.Errorf("settings must be a JSON object: %w", err)
		}

		return SaveSettings{Settings: settings}, nil
	},
}

// ParseIntent builds an outbound intent from its kind and string arguments.
func ParseIntent(kind string, args map[string]string) (Intent, error) {
	parse, ok := intentParsers[Kind(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an outbound intent", ErrUnknownKind, kind)
	}

	return parse(args)
}

// IntentKinds lists every outbound kind, sorted.
func IntentKinds() []string {
	kinds := make([]string, 0, len(intentParsers))
	for kind := range intentParsers {
		kinds = append(kinds, string(kind))
	}

	sort.Strings(kinds)

	return kinds
}

func noArgs(intent Intent) func(map[string]string) (Intent, error) {
	return func(args map[string]string) (Intent, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s takes no arguments", intent.Kind())
		}

		return intent, nil
	}
}

func oneArg(field string, build func(string) Intent) func(map[string]string) (Intent, error) {
	return func(args map[string]string) (Intent, error) {
		value, err := require(args, field)
		if err != nil {
			return nil, err
		}

		return build(value), nil
	}
}

func require(args map[string]string, field string) (string, error) {
	value, ok := args[field]
	if !ok || value == "" {
		return "", fmt.Errorf("missing required argument %s=<value>", field)
	}

	return value, nil
}
