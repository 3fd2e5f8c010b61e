package launcher

import "fmt"

// Violations lists the ways a snapshot breaks the invariants the host is
// responsible for. The UI renders snapshots as received; the result is only
// used for diagnostics.
func (s *State) Violations() []string {
	var problems []string

	seenKeys := make(map[string]bool, len(s.SavedAccounts))
	current := 0

	for _, account := range s.SavedAccounts {
		if seenKeys[account.Key] {
			problems = append(problems, fmt.Sprintf("duplicate saved account key %q", account.Key))
		}

		seenKeys[account.Key] = true

		if want := SavedAccountKey(account.Type, account.Username); account.Key != want {
			problems = append(problems, fmt.Sprintf("saved account key %q does not match %q", account.Key, want))
		}

		if account.IsCurrent {
			current++
		}
	}

	if current > 1 {
		problems = append(problems, fmt.Sprintf("%d saved accounts marked current", current))
	}

	if s.SelectedSkinID != "" {
		if _, ok := s.SelectedSkin(); !ok {
			problems = append(problems, fmt.Sprintf("selected skin %q does not exist", s.SelectedSkinID))
		}
	}

	equippedByType := make(map[string]int)

	for _, item := range s.Shop.Items {
		if !item.Equipped {
			continue
		}

		if !item.Owned {
			problems = append(problems, fmt.Sprintf("shop item %q equipped but not owned", item.ID))
		}

		equippedByType[item.Type]++
		if equippedByType[item.Type] == 2 {
			problems = append(problems, fmt.Sprintf("more than one %q item equipped", item.Type))
		}
	}

	return problems
}
