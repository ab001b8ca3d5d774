package models

import "time"

const (
	SiteSettingName = "site_name"
	SiteSettingLogo = "site_logo"
)

// SiteSetting is a key/value row for storefront chrome.
type SiteSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SiteSetting) TableName() string { return "site_settings" }
