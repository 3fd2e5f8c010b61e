// Package launcher defines the launcher state the host pushes to the UI.
//
// State is owned by the host. The UI holds a reconciled copy that is only
// ever replaced by a full snapshot or patched by a narrow update; nothing in
// this package mutates a State on the host's behalf.
package launcher

// Account is the account the host currently plays with.
type Account struct {
	Username string `json:"username" yaml:"username"`
	Type     string `json:"type" yaml:"type"`
}

// Version is a game version the host can launch.
type Version struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// SavedAccount is an account remembered by the host, keyed by "type:username".
type SavedAccount struct {
	Key       string `json:"key" yaml:"key"`
	Username  string `json:"username" yaml:"username"`
	Type      string `json:"type" yaml:"type"`
	IsCurrent bool   `json:"isCurrent" yaml:"isCurrent"`
}

// Settings are the launcher and game preferences.
type Settings struct {
	GameDirectory      string `json:"gameDirectory" yaml:"gameDirectory"`
	JavaPath           string `json:"javaPath" yaml:"javaPath"`
	MinRAMMb           int    `json:"minRamMb" yaml:"minRamMb"`
	MaxRAMMb           int    `json:"maxRamMb" yaml:"maxRamMb"`
	AutoJava           bool   `json:"autoJava" yaml:"autoJava"`
	UseLowEndPreset    bool   `json:"useLowEndPreset" yaml:"useLowEndPreset"`
	UsePotatoPreset    bool   `json:"usePotatoPreset" yaml:"usePotatoPreset"`
	UsePerformancePack bool   `json:"usePerformancePack" yaml:"usePerformancePack"`
	GraphicsEngine     string `json:"graphicsEngine" yaml:"graphicsEngine"`
	MicrosoftClientID  string `json:"microsoftClientId" yaml:"microsoftClientId"`
	VulkanAvailable    bool   `json:"vulkanAvailable" yaml:"vulkanAvailable"`
	VulkanStatus       string `json:"vulkanStatus" yaml:"vulkanStatus"`
	AMCModInstalled    bool   `json:"amcModInstalled" yaml:"amcModInstalled"`
	AMCModStatus       string `json:"amcModStatus" yaml:"amcModStatus"`
}

// Skin is an uploaded player skin.
type Skin struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Variant    string `json:"variant" yaml:"variant"`
	PreviewURL string `json:"previewUrl" yaml:"previewUrl"`
}

// Mod is a mod jar found in the game's mods folder.
type Mod struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	FileName string `json:"fileName" yaml:"fileName"`
	IconURL  string `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
}

// ShopItem is a purchasable cosmetic.
type ShopItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Price       int    `json:"price" yaml:"price"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	RequiresMod bool   `json:"requiresMod" yaml:"requiresMod"`
	Owned       bool   `json:"owned" yaml:"owned"`
	Equipped    bool   `json:"equipped" yaml:"equipped"`
}

// Shop holds the point balance and the item catalog.
type Shop struct {
	Points           int        `json:"points" yaml:"points"`
	TotalPlayMinutes int        `json:"totalPlayMinutes" yaml:"totalPlayMinutes"`
	PointsPerMinute  int        `json:"pointsPerMinute" yaml:"pointsPerMinute"`
	Items            []ShopItem `json:"items" yaml:"items"`
}

// State is the authoritative launcher snapshot.
type State struct {
	LatestReleaseID   string         `json:"latestReleaseId" yaml:"latestReleaseId"`
	SelectedVersionID string         `json:"selectedVersionId" yaml:"selectedVersionId"`
	Account           *Account       `json:"account" yaml:"account"`
	SavedAccounts     []SavedAccount `json:"savedAccounts" yaml:"savedAccounts"`
	LocalAccounts     []string       `json:"localAccounts" yaml:"localAccounts"`
	Versions          []Version      `json:"versions" yaml:"versions"`
	Busy              bool           `json:"busy" yaml:"busy"`
	Status            string         `json:"status" yaml:"status"`
	Settings          Settings       `json:"settings" yaml:"settings"`
	Skins             []Skin         `json:"skins" yaml:"skins"`
	SelectedSkinID    string         `json:"selectedSkinId" yaml:"selectedSkinId"`
	Mods              []Mod          `json:"mods" yaml:"mods"`
	Shop              Shop           `json:"shop" yaml:"shop"`
}

// Default engine and RAM values used before the host sends anything.
const (
	DefaultMinRAMMb        = 512
	DefaultMaxRAMMb        = 2048
	DefaultGraphicsEngine  = "opengl"
	DefaultPointsPerMinute = 5
)

// Default returns the placeholder state shown before the first snapshot.
func Default() State {
	return State{
		SavedAccounts: []SavedAccount{},
		LocalAccounts: []string{},
		Versions:      []Version{},
		Settings: Settings{
			MinRAMMb:       DefaultMinRAMMb,
			MaxRAMMb:       DefaultMaxRAMMb,
			AutoJava:       true,
			GraphicsEngine: DefaultGraphicsEngine,
		},
		Skins: []Skin{},
		Mods:  []Mod{},
		Shop: Shop{
			PointsPerMinute: DefaultPointsPerMinute,
			Items:           []ShopItem{},
		},
	}
}

// Clone returns a deep copy. Nil lists become empty lists so renderers
// never have to distinguish a missing list from an empty one.
func (s State) Clone() State {
	out := s

	if s.Account != nil {
		account := *s.Account
		out.Account = &account
	}

	out.SavedAccounts = cloneSlice(s.SavedAccounts)
	out.LocalAccounts = cloneSlice(s.LocalAccounts)
	out.Versions = cloneSlice(s.Versions)
	out.Skins = cloneSlice(s.Skins)
	out.Mods = cloneSlice(s.Mods)
	out.Shop.Items = cloneSlice(s.Shop.Items)

	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	return out
}
