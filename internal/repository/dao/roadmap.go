package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategorySlugExists = errors.New("category slug already exists")
	ErrItemNotFound       = errors.New("roadmap item not found")
	ErrItemExists         = errors.New("roadmap item already exists")
)

type RoadmapCategory struct {
	ID            string            `gorm:"primaryKey;type:varchar(36)"`
	Title         string            `gorm:"not null"`
	Subtitle      string            `gorm:"not null"`
	Description   string            `gorm:"type:text;not null"`
	AccentColor   string            `gorm:"not null"`
	Slug          string            `gorm:"uniqueIndex;not null"`
	Icon          *string
	ParentID      *string           `gorm:"type:varchar(36);index"`
	Items         []RoadmapItem     `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SubCategories []RoadmapCategory `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *RoadmapCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type RoadmapItem struct {
	ID            string    `gorm:"primaryKey;type:varchar(120)"`
	Title         string    `gorm:"not null"`
	Description   string    `gorm:"type:text;not null"`
	Label         string    `gorm:"not null"`
	VideoURL      string    `gorm:"not null;default:''"`
	VideoType     string    `gorm:"not null;default:youtube"`
	DetailContent string    `gorm:"type:text;not null;default:''"`
	Icon          string    `gorm:"not null;default:star"`
	CategoryID    string    `gorm:"type:varchar(36);not null;index"`
	Comments      []Comment `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RoadmapDAO struct {
	db *gorm.DB
}

func NewRoadmapDAO(db *gorm.DB) *RoadmapDAO {
	return &RoadmapDAO{
		db: db,
	}
}

func (d *RoadmapDAO) FindRootCategories(ctx context.Context) ([]RoadmapCategory, error) {
	var categories []RoadmapCategory

	result := d.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Scopes(orderByCreatedAsc).
		Preload("Items", orderByCreatedAsc).
		Preload("SubCategories", orderByCreatedAsc).
		Preload("SubCategories.Items", orderByCreatedAsc).
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *RoadmapDAO) FindChildCategories(ctx context.Context, parentID string) ([]RoadmapCategory, error) {
	var categories []RoadmapCategory

	result := d.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Scopes(orderByCreatedAsc).
		Preload("Items", orderByCreatedAsc).
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *RoadmapDAO) CountChildCategories(ctx context.Context, parentID string) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).Model(&RoadmapCategory{}).Where("parent_id = ?", parentID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *RoadmapDAO) FindCategoryByID(ctx context.Context, id string) (RoadmapCategory, error) {
	return d.findCategory(ctx, "id = ?", id)
}

func (d *RoadmapDAO) FindCategoryBySlug(ctx context.Context, slug string) (RoadmapCategory, error) {
	return d.findCategory(ctx, "slug = ?", slug)
}

func (d *RoadmapDAO) findCategory(ctx context.Context, query string, arg string) (RoadmapCategory, error) {
	var category RoadmapCategory

	result := d.db.WithContext(ctx).
		Preload("Items", orderByCreatedAsc).
		Preload("SubCategories", orderByCreatedAsc).
		Preload("SubCategories.Items", orderByCreatedAsc).
		First(&category, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoadmapCategory{}, ErrCategoryNotFound
		}

		return RoadmapCategory{}, result.Error
	}

	return category, nil
}

// SlugTaken reports whether a category other than excludeID already holds slug.
func (d *RoadmapDAO) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64

	q := d.db.WithContext(ctx).Model(&RoadmapCategory{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if result := q.Count(&count); result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *RoadmapDAO) InsertCategory(ctx context.Context, category RoadmapCategory) (RoadmapCategory, error) {
	result := d.db.WithContext(ctx).Omit("Items", "SubCategories").Create(&category)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_roadmap_categories_slug") {
			return RoadmapCategory{}, ErrCategorySlugExists
		}

		return RoadmapCategory{}, result.Error
	}

	return category, nil
}

func (d *RoadmapDAO) UpdateCategory(ctx context.Context, id string, fields map[string]interface{}) (RoadmapCategory, error) {
	result := d.db.WithContext(ctx).Model(&RoadmapCategory{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_roadmap_categories_slug") {
			return RoadmapCategory{}, ErrCategorySlugExists
		}

		return RoadmapCategory{}, result.Error
	}
	if result.RowsAffected == 0 {
		return RoadmapCategory{}, ErrCategoryNotFound
	}

	return d.FindCategoryByID(ctx, id)
}

func (d *RoadmapDAO) DeleteCategory(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&RoadmapCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (d *RoadmapDAO) FindItemsByCategoryID(ctx context.Context, categoryID string) ([]RoadmapItem, error) {
	var items []RoadmapItem

	result := d.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Scopes(orderByCreatedAsc).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *RoadmapDAO) FindItemByID(ctx context.Context, id string) (RoadmapItem, error) {
	var item RoadmapItem

	result := d.db.WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoadmapItem{}, ErrItemNotFound
		}

		return RoadmapItem{}, result.Error
	}

	return item, nil
}

// FindItemWithComments loads an item with its top-level comments (newest first), each carrying
// its replies (oldest first).
func (d *RoadmapDAO) FindItemWithComments(ctx context.Context, id string) (RoadmapItem, error) {
	var item RoadmapItem

	result := d.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_id IS NULL").Order("created_at DESC")
		}).
		Preload("Comments.Replies", orderByCreatedAsc).
		First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoadmapItem{}, ErrItemNotFound
		}

		return RoadmapItem{}, result.Error
	}

	return item, nil
}

func (d *RoadmapDAO) InsertItem(ctx context.Context, item RoadmapItem) (RoadmapItem, error) {
	result := d.db.WithContext(ctx).Omit("Comments").Create(&item)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "roadmap_items_pkey") {
			return RoadmapItem{}, ErrItemExists
		}
		if isForeignKeyViolation(result.Error) {
			return RoadmapItem{}, ErrCategoryNotFound
		}

		return RoadmapItem{}, result.Error
	}

	return item, nil
}

func (d *RoadmapDAO) UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (RoadmapItem, error) {
	result := d.db.WithContext(ctx).Model(&RoadmapItem{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return RoadmapItem{}, ErrCategoryNotFound
		}

		return RoadmapItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return RoadmapItem{}, ErrItemNotFound
	}

	return d.FindItemByID(ctx, id)
}

func (d *RoadmapDAO) DeleteItem(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&RoadmapItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (d *RoadmapDAO) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if result := d.db.WithContext(ctx).Model(&RoadmapItem{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *RoadmapDAO) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if result := d.db.WithContext(ctx).Model(&RoadmapCategory{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
