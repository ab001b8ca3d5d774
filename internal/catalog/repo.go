package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/vendo-storefront/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads and replaces the catalog tables.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Load reads active categories, their items and site settings into a snapshot.
func (r *Repository) Load(ctx context.Context) (*Snapshot, error) {
	var cats []models.Category
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	categories := make([]Category, 0, len(cats))
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, categoryFromModel(c))
		ids = append(ids, c.ID)
	}

	var rows []models.MenuItem
	if len(ids) > 0 {
		if err := r.db.WithContext(ctx).
			Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Preload("AddOns", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Where("category_id IN ?", ids).
			Order("position ASC").
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load menu items: %w", err)
		}
	}

	items := make([]MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, menuItemFromModel(row))
	}

	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}

	return NewSnapshot(categories, items, settingsFromModels(settings), r.now().UTC()), nil
}

// Replace swaps the whole catalog for the given seed inside one transaction.
func (r *Repository) Replace(ctx context.Context, seed *Seed) error {
	if seed == nil {
		return fmt.Errorf("seed is required")
	}
	if err := seed.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.MenuItemAddOn{}, &models.MenuItemVariation{}, &models.MenuItem{}, &models.Category{}, &models.SiteSetting{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		for _, c := range seed.Categories {
			row := models.Category{ID: c.ID, Name: c.Name, Icon: c.Icon, SortOrder: c.SortOrder, Active: c.Active}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert category %s: %w", c.ID, err)
			}
			// gorm skips zero-value bools on create when the column has a default
			if !c.Active {
				if err := tx.Model(&row).Update("active", false).Error; err != nil {
					return fmt.Errorf("deactivate category %s: %w", c.ID, err)
				}
			}
		}

		for i, item := range seed.Items {
			row := menuItemToModel(item, i)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert menu item %s: %w", item.ID, err)
			}
			if !item.Available {
				if err := tx.Model(&models.MenuItem{}).Where("id = ?", item.ID).Update("available", false).Error; err != nil {
					return fmt.Errorf("mark %s unavailable: %w", item.ID, err)
				}
			}
		}

		settings := []models.SiteSetting{
			{Key: models.SiteSettingName, Value: seed.Settings.SiteName},
			{Key: models.SiteSettingLogo, Value: seed.Settings.SiteLogo},
		}
		for _, s := range settings {
			if s.Value == "" {
				continue
			}
			if err := tx.Create(&s).Error; err != nil {
				return fmt.Errorf("insert site setting %s: %w", s.Key, err)
			}
		}
		return nil
	})
}
