package models

import "time"

// Category is a menu section; SortOrder drives display order.
type Category struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Icon      string    `gorm:"column:icon;not null;default:''"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }
