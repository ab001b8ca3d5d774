package controllers

import (
	"github.com/angelmondragon/vendo-storefront/internal/customization"
	"github.com/angelmondragon/vendo-storefront/internal/menu"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
)

type SelectVariationRequest struct {
	VariationID string `json:"variationId" validate:"required,max=128"`
}

type SetAddOnRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

type VariationChoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Selected bool   `json:"selected"`
}

type AddOnChoice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceLabel string `json:"priceLabel"`
	Quantity   int    `json:"quantity"`
}

type AddOnGroupResponse struct {
	Category string        `json:"category"`
	Label    string        `json:"label"`
	AddOns   []AddOnChoice `json:"addOns"`
}

type CustomizationResponse struct {
	ItemID      string               `json:"itemId"`
	Phase       customization.Phase  `json:"phase"`
	Card        menu.Card            `json:"card"`
	Variations  []VariationChoice    `json:"variations,omitempty"`
	AddOnGroups []AddOnGroupResponse `json:"addOnGroups,omitempty"`
	Price       string               `json:"price"`
	ActionLabel string               `json:"actionLabel"`
}

func newCustomizationResponse(state *customization.State, builder menu.Builder) CustomizationResponse {
	item := state.Item()
	f := builder.Formatter
	price := state.Price()

	resp := CustomizationResponse{
		ItemID:      item.ID,
		Phase:       state.Phase(),
		Card:        builder.Card(item, 0),
		Price:       f.Currency(price),
		ActionLabel: "Add to Cart - " + f.Currency(price),
	}

	selected := state.SelectedVariation()
	for _, v := range item.Variations {
		resp.Variations = append(resp.Variations, VariationChoice{
			ID:       v.ID,
			Name:     v.Name,
			Price:    f.Currency(pricing.VariationPrice(item, v)),
			Selected: selected != nil && selected.ID == v.ID,
		})
	}
	for _, g := range customization.AddOnGroups(item) {
		group := AddOnGroupResponse{Category: g.Category, Label: g.Label}
		for _, a := range g.AddOns {
			group.AddOns = append(group.AddOns, AddOnChoice{
				ID:         a.ID,
				Name:       a.Name,
				PriceLabel: f.Each(a.Price),
				Quantity:   state.AddOnQuantity(a.ID),
			})
		}
		resp.AddOnGroups = append(resp.AddOnGroups, group)
	}
	return resp
}
