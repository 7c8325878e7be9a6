package cart

// All monetary amounts are integer minor units (cents). The upstream catalog
// is the source of truth for prices; this package only freezes and sums them.

// ProductSnapshot is the product as it looked when the shopper added it.
// It is copied at add-time and never refreshed, so upstream price edits do
// not retroactively change existing line items.
type ProductSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       int64  `json:"price"`
}

// SubItemSelection is one chosen entry inside a modifier group.
type SubItemSelection struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// ModifierSelection groups the sub-items a shopper picked for one modifier
// section ("Extras", "Choose your protein", ...).
type ModifierSelection struct {
	GroupID   string             `json:"group_id,omitempty"`
	GroupName string             `json:"group_name"`
	Items     []SubItemSelection `json:"items"`
}

// LineItem is one row in the cart: a product snapshot plus one specific
// modifier configuration. Quantity and LineTotal are the only fields mutated
// after creation; everything else is write-once.
type LineItem struct {
	ID               string              `json:"id"`
	CatalogProductID string              `json:"catalog_product_id"`
	Product          ProductSnapshot     `json:"product"`
	Quantity         int                 `json:"quantity"`
	Modifiers        []ModifierSelection `json:"modifiers"`
	Notes            string              `json:"notes,omitempty"`
	UnitPrice        int64               `json:"unit_price"`
	LineTotal        int64               `json:"total_price"`
}

// subItemQuantity treats missing/zero quantities as 1. Groups that do not
// allow per-item quantity omit the field upstream.
func subItemQuantity(item SubItemSelection) int {
	if item.Quantity < 1 {
		return 1
	}
	return item.Quantity
}

// UnitPriceFor computes base price plus the price delta of every selected
// sub-item.
func UnitPriceFor(product ProductSnapshot, modifiers []ModifierSelection) int64 {
	total := product.Price
	for _, group := range modifiers {
		for _, item := range group.Items {
			total += item.Price * int64(subItemQuantity(item))
		}
	}
	return total
}
