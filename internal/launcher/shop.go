package launcher

// ShopGroup is the shop items of one type, in catalog order.
type ShopGroup struct {
	Type  string
	Items []ShopItem
}

// ItemAction is what the primary button of a shop item does.
type ItemAction int

const (
	// ActionBuy purchases an item that is not owned yet.
	ActionBuy ItemAction = iota
	// ActionEquip equips an owned item.
	ActionEquip
	// ActionNone means the item is already equipped.
	ActionNone
)

// String returns the button label for the action.
func (a ItemAction) String() string {
	switch a {
	case ActionBuy:
		return "Buy"
	case ActionEquip:
		return "Equip"
	default:
		return "Equipped"
	}
}

// Groups returns the catalog grouped by item type. Groups appear in the order
// their type first occurs in the catalog.
func (s *Shop) Groups() []ShopGroup {
	index := make(map[string]int)

	var groups []ShopGroup

	for _, item := range s.Items {
		i, ok := index[item.Type]
		if !ok {
			i = len(groups)
			index[item.Type] = i
			groups = append(groups, ShopGroup{Type: item.Type})
		}

		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// CanAfford reports whether the balance covers the item's price.
func (s *Shop) CanAfford(item ShopItem) bool {
	return s.Points >= item.Price
}

// Action returns the primary action for an item.
func (item ShopItem) Action() ItemAction {
	switch {
	case !item.Owned:
		return ActionBuy
	case !item.Equipped:
		return ActionEquip
	default:
		return ActionNone
	}
}

// Enabled reports whether the primary action is available: buying needs
// enough points and equipping needs the item not to be equipped already.
func (s *Shop) Enabled(item ShopItem) bool {
	switch item.Action() {
	case ActionBuy:
		return s.CanAfford(item)
	case ActionEquip:
		return true
	default:
		return false
	}
}

// Equipped returns the equipped item of a type, if any.
func (s *Shop) Equipped(itemType string) (ShopItem, bool) {
	for _, item := range s.Items {
		if item.Type == itemType && item.Equipped {
			return item, true
		}
	}

	return ShopItem{}, false
}

// Item looks an item up by id.
func (s *Shop) Item(id string) (ShopItem, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}

	return ShopItem{}, false
}
