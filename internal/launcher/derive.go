package launcher

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// AccountTypeMicrosoft is the account type the host reports for online accounts.
const AccountTypeMicrosoft = "Microsoft"

// LatestLabel is the latest release id, or "Unknown" before the host resolves it.
func (s *State) LatestLabel() string {
	if s.LatestReleaseID == "" {
		return "Unknown"
	}

	return s.LatestReleaseID
}

// EffectiveVersion is the version Play would launch: the selected one, falling
// back to the latest release.
func (s *State) EffectiveVersion() string {
	if s.SelectedVersionID != "" {
		return s.SelectedVersionID
	}

	return s.LatestLabel()
}

// VersionChoices lists the versions offered in the picker. When the host has
// not sent a list yet the effective version is offered on its own.
func (s *State) VersionChoices() []Version {
	if len(s.Versions) > 0 {
		return s.Versions
	}

	return []Version{{ID: s.EffectiveVersion(), Type: "release"}}
}

// IsOutdated reports whether the selected version is older than the latest
// release. Ids that are not semantic versions (snapshots such as "24w14a")
// are never reported as outdated.
func (s *State) IsOutdated() bool {
	if s.SelectedVersionID == "" || s.LatestReleaseID == "" {
		return false
	}

	selected, err := semver.NewVersion(s.SelectedVersionID)
	if err != nil {
		return false
	}

	latest, err := semver.NewVersion(s.LatestReleaseID)
	if err != nil {
		return false
	}

	return selected.LessThan(latest)
}

// AccountName returns the current username or fallback when signed out.
func (s *State) AccountName(fallback string) string {
	if s.Account == nil || s.Account.Username == "" {
		return fallback
	}

	return s.Account.Username
}

// AccountType returns the current account type or fallback when signed out.
func (s *State) AccountType(fallback string) string {
	if s.Account == nil || s.Account.Type == "" {
		return fallback
	}

	return s.Account.Type
}

// IsMicrosoftAccount reports whether a saved account type is an online account.
func IsMicrosoftAccount(accountType string) bool {
	return strings.EqualFold(accountType, AccountTypeMicrosoft)
}

// NeedsFabricForSkins is true when custom skins cannot show in-game: offline
// accounts only get skins through the Performance Pack's Fabric loader.
func (s *State) NeedsFabricForSkins() bool {
	return s.AccountType("") != AccountTypeMicrosoft && !s.Settings.UsePerformancePack
}

// SelectedSkin returns the selected skin, if it exists.
func (s *State) SelectedSkin() (Skin, bool) {
	if s.SelectedSkinID == "" {
		return Skin{}, false
	}

	for _, skin := range s.Skins {
		if skin.ID == s.SelectedSkinID {
			return skin, true
		}
	}

	return Skin{}, false
}

// CurrentSavedAccount returns the saved account marked current, if any.
func (s *State) CurrentSavedAccount() (SavedAccount, bool) {
	for _, account := range s.SavedAccounts {
		if account.IsCurrent {
			return account, true
		}
	}

	return SavedAccount{}, false
}

// SavedAccountKey builds the key the host uses for a saved account.
func SavedAccountKey(accountType, username string) string {
	return accountType + ":" + username
}
