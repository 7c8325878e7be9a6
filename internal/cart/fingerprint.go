package cart

import (
	"encoding/json"
	"sort"
)

// A fingerprint decides whether two add-to-cart calls describe the "same"
// configured product and should merge into one line item. It is a canonical
// JSON encoding of (catalog product id, modifier selections, notes):
//
//   - groups sorted by group name, ties broken by group id
//   - sub-items within a group sorted by item id
//   - only {item_id, quantity} pairs contribute per sub-item; prices are
//     derived data and carry no extra information
//   - absent notes encode as the empty string
//
// The encoding is deterministic, so equal selections produce equal strings
// regardless of the order the shopper picked them in.

type fingerprintItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type fingerprintGroup struct {
	GroupName string            `json:"group_name"`
	Items     []fingerprintItem `json:"items"`
}

type fingerprintPayload struct {
	CatalogProductID string             `json:"catalog_product_id"`
	Modifiers        []fingerprintGroup `json:"modifiers"`
	Notes            string             `json:"notes"`
}

func fingerprint(catalogProductID string, modifiers []ModifierSelection, notes string) string {
	groups := make([]fingerprintGroup, 0, len(modifiers))
	order := make([]ModifierSelection, len(modifiers))
	copy(order, modifiers)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].GroupName != order[j].GroupName {
			return order[i].GroupName < order[j].GroupName
		}
		return order[i].GroupID < order[j].GroupID
	})

	for _, group := range order {
		items := make([]fingerprintItem, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, fingerprintItem{
				ItemID:   item.ItemID,
				Quantity: subItemQuantity(item),
			})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })
		groups = append(groups, fingerprintGroup{GroupName: group.GroupName, Items: items})
	}

	encoded, err := json.Marshal(fingerprintPayload{
		CatalogProductID: catalogProductID,
		Modifiers:        groups,
		Notes:            notes,
	})
	if err != nil {
		// Marshal of plain structs cannot fail; keep the compiler honest.
		return catalogProductID + "\x00" + notes
	}
	return string(encoded)
}
