package catalog

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/vendo-storefront/pkg/db/models"
)

func categoryFromModel(m models.Category) Category {
	return Category{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      m.Icon,
		SortOrder: m.SortOrder,
		Active:    m.Active,
	}
}

func menuItemFromModel(m models.MenuItem) MenuItem {
	item := MenuItem{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		BasePrice:    m.BasePrice,
		IsOnDiscount: m.IsOnDiscount,
		Category:     m.CategoryID,
		Available:    m.Available,
		Popular:      m.Popular,
	}
	if m.ImageURL != nil {
		item.Image = *m.ImageURL
	}
	if m.DiscountPrice != nil {
		price := *m.DiscountPrice
		item.DiscountPrice = &price
	}
	for _, v := range m.Variations {
		item.Variations = append(item.Variations, Variation{ID: v.VariationID, Name: v.Name, Price: v.Price})
	}
	for _, a := range m.AddOns {
		item.AddOns = append(item.AddOns, AddOn{ID: a.AddOnID, Name: a.Name, Price: a.Price, Category: a.Category})
	}
	return item
}

func settingsFromModels(rows []models.SiteSetting) SiteSettings {
	var s SiteSettings
	for _, row := range rows {
		switch row.Key {
		case models.SiteSettingName:
			s.SiteName = row.Value
		case models.SiteSettingLogo:
			s.SiteLogo = row.Value
		}
	}
	return s
}

func menuItemToModel(item MenuItem, position int) models.MenuItem {
	m := models.MenuItem{
		ID:           item.ID,
		CategoryID:   item.Category,
		Name:         item.Name,
		Description:  item.Description,
		BasePrice:    item.BasePrice,
		IsOnDiscount: item.IsOnDiscount,
		Available:    item.Available,
		Popular:      item.Popular,
		Position:     position,
	}
	if item.Image != "" {
		image := item.Image
		m.ImageURL = &image
	}
	if item.DiscountPrice != nil {
		price := *item.DiscountPrice
		m.DiscountPrice = &price
	}
	for i, v := range item.Variations {
		m.Variations = append(m.Variations, models.MenuItemVariation{
			ID:          uuid.New(),
			MenuItemID:  item.ID,
			VariationID: v.ID,
			Name:        v.Name,
			Price:       v.Price,
			Position:    i,
		})
	}
	for i, a := range item.AddOns {
		m.AddOns = append(m.AddOns, models.MenuItemAddOn{
			ID:         uuid.New(),
			MenuItemID: item.ID,
			AddOnID:    a.ID,
			Name:       a.Name,
			Price:      a.Price,
			Category:   a.Category,
			Position:   i,
		})
	}
	return m
}
