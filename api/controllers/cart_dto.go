package controllers

import (
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/cartview"
)

type AddOnChoiceRequest struct {
	ID       string `json:"id" validate:"required,max=128"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=99"`
}

type AddToCartRequest struct {
	ItemID      string               `json:"itemId" validate:"required,max=128"`
	Quantity    int                  `json:"quantity" validate:"gte=0,lte=999"`
	VariationID string               `json:"variationId" validate:"max=128"`
	AddOns      []AddOnChoiceRequest `json:"addOns" validate:"max=50,dive"`
}

func (r AddToCartRequest) toInput() cart.AddInput {
	input := cart.AddInput{
		ItemID:      r.ItemID,
		Quantity:    r.Quantity,
		VariationID: r.VariationID,
	}
	for _, a := range r.AddOns {
		input.AddOns = append(input.AddOns, cart.AddOnChoice{ID: a.ID, Quantity: a.Quantity})
	}
	return input
}

// UpdateQuantityRequest carries the new quantity; zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=999"`
}

type CartResponse struct {
	Cart   cartview.View `json:"cart"`
	LineID string        `json:"lineId,omitempty"`
}

type CartTotalResponse struct {
	Total     string `json:"total"`
	Formatted string `json:"formatted"`
	ItemCount int    `json:"itemCount"`
}

type CheckoutResponse struct {
	Summary string        `json:"summary"`
	Total   string        `json:"total"`
	Cart    cartview.View `json:"cart"`
}
