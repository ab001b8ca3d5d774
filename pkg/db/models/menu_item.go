package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is a purchasable catalog entry.
type MenuItem struct {
	ID            string              `gorm:"column:id;primaryKey"`
	CategoryID    string              `gorm:"column:category_id;not null;index"`
	Name          string              `gorm:"column:name;not null"`
	Description   string              `gorm:"column:description;not null;default:''"`
	ImageURL      *string             `gorm:"column:image_url"`
	BasePrice     decimal.Decimal     `gorm:"column:base_price;type:numeric(12,2);not null"`
	DiscountPrice *decimal.Decimal    `gorm:"column:discount_price;type:numeric(12,2)"`
	IsOnDiscount  bool                `gorm:"column:is_on_discount;not null;default:false"`
	Available     bool                `gorm:"column:available;not null;default:true"`
	Popular       bool                `gorm:"column:popular;not null;default:false"`
	Position      int                 `gorm:"column:position;not null;default:0"`
	Variations    []MenuItemVariation `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	AddOns        []MenuItemAddOn     `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (MenuItem) TableName() string { return "menu_items" }

// MenuItemVariation is a size/variant option with a signed price delta.
type MenuItemVariation struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	MenuItemID  string          `gorm:"column:menu_item_id;not null;uniqueIndex:idx_variation_item_key"`
	VariationID string          `gorm:"column:variation_id;not null;uniqueIndex:idx_variation_item_key"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Position    int             `gorm:"column:position;not null;default:0"`
}

func (MenuItemVariation) TableName() string { return "menu_item_variations" }

func (v *MenuItemVariation) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// MenuItemAddOn is an optional extra priced per unit.
type MenuItemAddOn struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	MenuItemID string          `gorm:"column:menu_item_id;not null;uniqueIndex:idx_add_on_item_key"`
	AddOnID    string          `gorm:"column:add_on_id;not null;uniqueIndex:idx_add_on_item_key"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category   string          `gorm:"column:category;not null;default:''"`
	Position   int             `gorm:"column:position;not null;default:0"`
}

func (MenuItemAddOn) TableName() string { return "menu_item_add_ons" }

func (a *MenuItemAddOn) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
