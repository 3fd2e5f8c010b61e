package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amc-launcher/amcui/internal/launcher"
)

// shopOrder lists items in display order: grouped by type.
func shopOrder(shop launcher.Shop) []launcher.ShopItem {
	items := make([]launcher.ShopItem, 0, len(shop.Items))
	for _, group := range shop.Groups() {
		items = append(items, group.Items...)
	}

	return items
}

func (m *Model) handleShopKey(msg tea.KeyMsg) {
	shop := m.view.State.Shop

	items := shopOrder(shop)
	cursor := m.cursors[TabShop]

	if cursor >= len(items) {
		return
	}

	item := items[cursor]

	switch {
	case key.Matches(msg, m.keys.Select):
		if !shop.Enabled(item) {
			if item.Action() == launcher.ActionBuy {
				m.notice = fmt.Sprintf("Need %d more points", item.Price-shop.Points)
			}

			return
		}

		m.sender.ShopAction(item)
	case key.Matches(msg, m.keys.Unequip):
		if _, ok := shop.Equipped(item.Type); ok {
			m.sender.Unequip(item.Type)
		}
	}
}

func (m Model) renderShop(width int) string {
	state := m.view.State
	shop := state.Shop

	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n",
		m.styles.title.Render(fmt.Sprintf("%d points", shop.Points)),
		m.styles.muted.Render(fmt.Sprintf("%d min played · %d pts/min", shop.TotalPlayMinutes, shop.PointsPerMinute)))

	if !state.Settings.AMCModInstalled {
		b.WriteString(m.styles.warning.Render("AMC mod not installed: cosmetics will not show in-game") + "\n")
	}

	index := 0

	for _, group := range shop.Groups() {
		b.WriteString("\n" + m.styles.title.Render(strings.ToUpper(group.Type)) + "\n")

		for _, item := range group.Items {
			label := fmt.Sprintf("%s %s  %d pts  [%s]", item.Icon, item.Name, item.Price, item.Action())
			if item.RequiresMod {
				label += " (mod)"
			}

			line := m.row(index == m.cursors[TabShop], label, width)
			if !shop.Enabled(item) && item.Action() == launcher.ActionBuy {
				line = m.styles.muted.Render(line)
			}

			b.WriteString(line + "\n")
			index++
		}
	}

	if len(shop.Items) == 0 {
		b.WriteString(m.styles.muted.Render("\nThe shop is empty"))
	}

	return b.String()
}
