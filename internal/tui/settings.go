package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/launcher"
)

// settingField is one row of the settings form.
type settingField int

const (
	fieldGameDirectory settingField = iota
	fieldJavaPath
	fieldAutoJava
	fieldMinRAM
	fieldMaxRAM
	fieldGraphicsEngine
	fieldLowEndPreset
	fieldPotatoPreset
	fieldPerformancePack
	fieldMicrosoftClientID
)

var settingFields = []settingField{
	fieldGameDirectory,
	fieldJavaPath,
	fieldAutoJava,
	fieldMinRAM,
	fieldMaxRAM,
	fieldGraphicsEngine,
	fieldLowEndPreset,
	fieldPotatoPreset,
	fieldPerformancePack,
	fieldMicrosoftClientID,
}

var graphicsEngines = []string{"opengl", "vulkan"}

func (f settingField) label() string {
	switch f {
	case fieldGameDirectory:
		return "Game directory"
	case fieldJavaPath:
		return "Java path"
	case fieldAutoJava:
		return "Pick Java automatically"
	case fieldMinRAM:
		return "Min RAM (MB)"
	case fieldMaxRAM:
		return "Max RAM (MB)"
	case fieldGraphicsEngine:
		return "Graphics engine"
	case fieldLowEndPreset:
		return "Low-end preset"
	case fieldPotatoPreset:
		return "Potato preset"
	case fieldPerformancePack:
		return "Performance Pack"
	case fieldMicrosoftClientID:
		return "Microsoft client id"
	default:
		return ""
	}
}

func (f settingField) isText() bool {
	switch f {
	case fieldGameDirectory, fieldJavaPath, fieldMinRAM, fieldMaxRAM, fieldMicrosoftClientID:
		return true
	default:
		return false
	}
}

func settingValue(s launcher.Settings, f settingField) string {
	switch f {
	case fieldGameDirectory:
		return s.GameDirectory
	case fieldJavaPath:
		return s.JavaPath
	case fieldAutoJava:
		return onOff(s.AutoJava)
	case fieldMinRAM:
		return strconv.Itoa(s.MinRAMMb)
	case fieldMaxRAM:
		return strconv.Itoa(s.MaxRAMMb)
	case fieldGraphicsEngine:
		return s.GraphicsEngine
	case fieldLowEndPreset:
		return onOff(s.UseLowEndPreset)
	case fieldPotatoPreset:
		return onOff(s.UsePotatoPreset)
	case fieldPerformancePack:
		return onOff(s.UsePerformancePack)
	case fieldMicrosoftClientID:
		return s.MicrosoftClientID
	default:
		return ""
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}

	return "off"
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	field := settingFields[m.cursors[TabSettings]]

	switch {
	case key.Matches(msg, m.keys.Save):
		if m.draft.Dirty() {
			m.sender.SaveSettings(m.draft.Value())
			m.notice = "Settings sent"
		}
	case key.Matches(msg, m.keys.Reset):
		m.draft.Reset()
	case key.Matches(msg, m.keys.BrowseGameDir):
		m.sender.BrowseGameDir()
	case key.Matches(msg, m.keys.BrowseJava):
		m.sender.BrowseJava()
	case key.Matches(msg, m.keys.TryMachine):
		m.sender.TryMachine()
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Toggle):
		if field.isText() {
			m.settingField = field
			return m.openInput(inputSettingsField, field.label(), settingValue(m.draft.Value(), field))
		}

		m.toggleSetting(field)
	}

	return nil
}

func (m *Model) toggleSetting(field settingField) {
	value := m.draft.Value()

	switch field {
	case fieldAutoJava:
		m.draft.Update(func(s *launcher.Settings) { s.AutoJava = !s.AutoJava })
	case fieldLowEndPreset:
		m.draft.SetLowEndPreset(!value.UseLowEndPreset)
	case fieldPotatoPreset:
		m.draft.SetPotatoPreset(!value.UsePotatoPreset)
	case fieldPerformancePack:
		m.draft.Update(func(s *launcher.Settings) { s.UsePerformancePack = !s.UsePerformancePack })
	case fieldGraphicsEngine:
		next := graphicsEngines[0]
		for i, engine := range graphicsEngines {
			if engine == value.GraphicsEngine {
				next = graphicsEngines[(i+1)%len(graphicsEngines)]
			}
		}

		if next == "vulkan" && !value.VulkanAvailable {
			m.notice = "Vulkan is not available on this machine"
			next = "opengl"
		}

		m.draft.Update(func(s *launcher.Settings) { s.GraphicsEngine = next })
	}
}

func (m *Model) setSettingText(field settingField, text string) {
	value := m.draft.Value()

	switch field {
	case fieldGameDirectory:
		m.draft.Update(func(s *launcher.Settings) { s.GameDirectory = strings.TrimSpace(text) })
	case fieldJavaPath:
		m.draft.Update(func(s *launcher.Settings) { s.JavaPath = strings.TrimSpace(text) })
	case fieldMinRAM:
		m.draft.SetRAM(text, strconv.Itoa(value.MaxRAMMb))
	case fieldMaxRAM:
		m.draft.SetRAM(strconv.Itoa(value.MinRAMMb), text)
	case fieldMicrosoftClientID:
		m.draft.Update(func(s *launcher.Settings) { s.MicrosoftClientID = strings.TrimSpace(text) })
	}
}

func (m Model) renderSettings(width int) string {
	value := m.draft.Value()

	var b strings.Builder

	for i, field := range settingFields {
		text := settingValue(value, field)
		if text == "" {
			text = "(not set)"
		}

		label := fmt.Sprintf("%-24s %s", field.label(), text)
		b.WriteString(m.row(i == m.cursors[TabSettings], label, width) + "\n")
	}

	b.WriteString("\n")

	if value.VulkanStatus != "" {
		b.WriteString(m.styles.muted.Render(truncate(value.VulkanStatus, width)) + "\n")
	}

	if m.draft.Dirty() {
		b.WriteString(m.styles.warning.Render("Unsaved changes: s to save, R to discard"))
	}

	return b.String()
}
