// Package draft holds an editable copy of the launcher settings.
//
// Edits only touch the draft. Commit builds the save_settings intent; the
// authoritative settings change only when the host sends a new snapshot.
package draft

import (
	"strconv"
	"strings"

	"github.com/amc-launcher/amcui/internal/envelope"
	"github.com/amc-launcher/amcui/internal/launcher"
)

// Draft is a local, uncommitted copy of launcher settings.
type Draft struct {
	base  launcher.Settings
	value launcher.Settings
}

// New starts a draft from the authoritative settings.
func New(base launcher.Settings) *Draft {
	return &Draft{base: base, value: base}
}

// Update applies fn to the draft.
func (d *Draft) Update(fn func(*launcher.Settings)) {
	fn(&d.value)
}

// SetLowEndPreset toggles the low-end preset. Turning it on turns the
// potato preset off.
func (d *Draft) SetLowEndPreset(on bool) {
	d.value.UseLowEndPreset = on
	if on {
		d.value.UsePotatoPreset = false
	}
}

// SetPotatoPreset toggles the potato preset. Turning it on turns the
// low-end preset off.
func (d *Draft) SetPotatoPreset(on bool) {
	d.value.UsePotatoPreset = on
	if on {
		d.value.UseLowEndPreset = false
	}
}

// SetRAM sets the memory bounds from form text. Text that is not a whole
// number of megabytes becomes 0.
func (d *Draft) SetRAM(minMb, maxMb string) {
	d.value.MinRAMMb = parseMb(minMb)
	d.value.MaxRAMMb = parseMb(maxMb)
}

func parseMb(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}

	return n
}

// Value returns the draft settings.
func (d *Draft) Value() launcher.Settings { return d.value }

// Base returns the authoritative settings the draft started from.
func (d *Draft) Base() launcher.Settings { return d.base }

// Dirty reports whether the draft differs from its base.
func (d *Draft) Dirty() bool { return d.value != d.base }

// Rebase restarts the draft from new authoritative settings. Local edits
// are discarded when base differs from the previous base; an unchanged
// base keeps them.
func (d *Draft) Rebase(base launcher.Settings) {
	if base == d.base {
		return
	}

	d.base = base
	d.value = base
}

// Reset discards local edits.
func (d *Draft) Reset() { d.value = d.base }

// Commit returns the intent that asks the host to adopt the draft.
func (d *Draft) Commit() envelope.SaveSettings {
	return envelope.SaveSettings{Settings: d.value}
}
