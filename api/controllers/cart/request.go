package cart

import (
	cartsvc "github.com/sincrochat/catalog-backend/internal/cart"
)

type productPayload struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       int64  `json:"price" validate:"min=0"`
}

type subItemPayload struct {
	ItemID   string `json:"item_id" validate:"required"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type modifierPayload struct {
	GroupID   string           `json:"group_id"`
	GroupName string           `json:"group_name" validate:"required"`
	Items     []subItemPayload `json:"items" validate:"dive"`
}

type addItemRequest struct {
	CatalogProductID string            `json:"catalog_product_id" validate:"required"`
	Product          productPayload    `json:"product" validate:"required"`
	Quantity         int               `json:"quantity" validate:"required,min=1"`
	Modifiers        []modifierPayload `json:"modifiers" validate:"dive"`
	Notes            string            `json:"notes"`
}

// Quantity is a pointer so an explicit 0 (delete) is distinguishable from a
// missing field.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

func toAddInput(payload addItemRequest) cartsvc.AddInput {
	modifiers := make([]cartsvc.ModifierSelection, 0, len(payload.Modifiers))
	for _, group := range payload.Modifiers {
		items := make([]cartsvc.SubItemSelection, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, cartsvc.SubItemSelection{
				ItemID:   item.ItemID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}
		modifiers = append(modifiers, cartsvc.ModifierSelection{
			GroupID:   group.GroupID,
			GroupName: group.GroupName,
			Items:     items,
		})
	}

	return cartsvc.AddInput{
		CatalogProductID: payload.CatalogProductID,
		Product: cartsvc.ProductSnapshot{
			ID:          payload.Product.ID,
			Name:        payload.Product.Name,
			Description: payload.Product.Description,
			Image:       payload.Product.Image,
			Price:       payload.Product.Price,
		},
		Quantity:  payload.Quantity,
		Modifiers: modifiers,
		Notes:     payload.Notes,
	}
}
