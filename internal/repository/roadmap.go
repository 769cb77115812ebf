package repository

import (
	"context"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategorySlugExists = dao.ErrCategorySlugExists
	ErrItemNotFound       = dao.ErrItemNotFound
	ErrItemExists         = dao.ErrItemExists
)

type RoadmapDAO interface {
	FindRootCategories(ctx context.Context) ([]dao.RoadmapCategory, error)
	FindChildCategories(ctx context.Context, parentID string) ([]dao.RoadmapCategory, error)
	CountChildCategories(ctx context.Context, parentID string) (int64, error)
	FindCategoryByID(ctx context.Context, id string) (dao.RoadmapCategory, error)
	FindCategoryBySlug(ctx context.Context, slug string) (dao.RoadmapCategory, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	InsertCategory(ctx context.Context, category dao.RoadmapCategory) (dao.RoadmapCategory, error)
	UpdateCategory(ctx context.Context, id string, fields map[string]interface{}) (dao.RoadmapCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	FindItemsByCategoryID(ctx context.Context, categoryID string) ([]dao.RoadmapItem, error)
	FindItemByID(ctx context.Context, id string) (dao.RoadmapItem, error)
	FindItemWithComments(ctx context.Context, id string) (dao.RoadmapItem, error)
	InsertItem(ctx context.Context, item dao.RoadmapItem) (dao.RoadmapItem, error)
	UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (dao.RoadmapItem, error)
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
}

type RoadmapRepository struct {
	dao RoadmapDAO
}

func NewRoadmapRepository(dao RoadmapDAO) *RoadmapRepository {
	return &RoadmapRepository{
		dao: dao,
	}
}

func (r *RoadmapRepository) FindRootCategories(ctx context.Context) ([]domain.Category, error) {
	found, err := r.dao.FindRootCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRootCategories -> %w", err)
	}

	return r.categoriesDaoToDomain(found), nil
}

func (r *RoadmapRepository) FindChildCategories(ctx context.Context, parentID string) ([]domain.Category, error) {
	found, err := r.dao.FindChildCategories(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChildCategories -> %w", err)
	}

	return r.categoriesDaoToDomain(found), nil
}

func (r *RoadmapRepository) HasChildCategories(ctx context.Context, id string) (bool, error) {
	count, err := r.dao.CountChildCategories(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountChildCategories -> %w", err)
	}

	return count > 0, nil
}

func (r *RoadmapRepository) FindCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *RoadmapRepository) FindCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	found, err := r.dao.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryBySlug -> %w", err)
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *RoadmapRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	taken, err := r.dao.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.SlugTaken -> %w", err)
	}

	return taken, nil
}

func (r *RoadmapRepository) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.RoadmapCategory{
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		AccentColor: c.AccentColor,
		Slug:        c.Slug,
		Icon:        c.Icon,
		ParentID:    c.ParentID,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

// UpdateCategory overwrites every editable column, including clearing icon and parent.
func (r *RoadmapRepository) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	updated, err := r.dao.UpdateCategory(ctx, c.ID, map[string]interface{}{
		"title":        c.Title,
		"subtitle":     c.Subtitle,
		"description":  c.Description,
		"accent_color": c.AccentColor,
		"slug":         c.Slug,
		"icon":         c.Icon,
		"parent_id":    c.ParentID,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.UpdateCategory -> %w", err)
	}

	return r.categoryDaoToDomain(updated), nil
}

func (r *RoadmapRepository) DeleteCategory(ctx context.Context, id string) error {
	if err := r.dao.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCategory -> %w", err)
	}

	return nil
}

func (r *RoadmapRepository) FindItemsByCategoryID(ctx context.Context, categoryID string) ([]domain.Item, error) {
	found, err := r.dao.FindItemsByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemsByCategoryID -> %w", err)
	}

	return r.itemsDaoToDomain(found), nil
}

func (r *RoadmapRepository) FindItemByID(ctx context.Context, id string) (domain.Item, error) {
	found, err := r.dao.FindItemByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindItemByID -> %w", err)
	}

	return r.itemDaoToDomain(found), nil
}

func (r *RoadmapRepository) FindItemWithComments(ctx context.Context, id string) (domain.Item, error) {
	found, err := r.dao.FindItemWithComments(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindItemWithComments -> %w", err)
	}

	item := r.itemDaoToDomain(found)
	item.Comments = commentsDaoToDomain(found.Comments)

	return item, nil
}

func (r *RoadmapRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.dao.InsertItem(ctx, dao.RoadmapItem{
		ID:            item.ID,
		Title:         item.Title,
		Description:   item.Description,
		Label:         item.Label,
		VideoURL:      item.VideoURL,
		VideoType:     item.VideoType,
		DetailContent: item.DetailContent,
		Icon:          item.Icon,
		CategoryID:    item.CategoryID,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.InsertItem -> %w", err)
	}

	return r.itemDaoToDomain(created), nil
}

func (r *RoadmapRepository) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.dao.UpdateItem(ctx, item.ID, map[string]interface{}{
		"title":          item.Title,
		"description":    item.Description,
		"label":          item.Label,
		"video_url":      item.VideoURL,
		"video_type":     item.VideoType,
		"detail_content": item.DetailContent,
		"icon":           item.Icon,
		"category_id":    item.CategoryID,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.UpdateItem -> %w", err)
	}

	return r.itemDaoToDomain(updated), nil
}

func (r *RoadmapRepository) DeleteItem(ctx context.Context, id string) error {
	if err := r.dao.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteItem -> %w", err)
	}

	return nil
}

func (r *RoadmapRepository) CountItems(ctx context.Context) (int64, error) {
	count, err := r.dao.CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountItems -> %w", err)
	}

	return count, nil
}

func (r *RoadmapRepository) CountCategories(ctx context.Context) (int64, error) {
	count, err := r.dao.CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCategories -> %w", err)
	}

	return count, nil
}

func (r *RoadmapRepository) categoriesDaoToDomain(categories []dao.RoadmapCategory) []domain.Category {
	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, r.categoryDaoToDomain(c))
	}

	return out
}

func (r *RoadmapRepository) categoryDaoToDomain(c dao.RoadmapCategory) domain.Category {
	category := domain.Category{
		ID:          c.ID,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		AccentColor: c.AccentColor,
		Slug:        c.Slug,
		Icon:        c.Icon,
		ParentID:    c.ParentID,
		Items:       r.itemsDaoToDomain(c.Items),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if len(c.SubCategories) > 0 {
		category.SubCategories = r.categoriesDaoToDomain(c.SubCategories)
	}

	return category
}

func (r *RoadmapRepository) itemsDaoToDomain(items []dao.RoadmapItem) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, i := range items {
		out = append(out, r.itemDaoToDomain(i))
	}

	return out
}

func (r *RoadmapRepository) itemDaoToDomain(i dao.RoadmapItem) domain.Item {
	return domain.Item{
		ID:            i.ID,
		Title:         i.Title,
		Description:   i.Description,
		Label:         i.Label,
		VideoURL:      i.VideoURL,
		VideoType:     i.VideoType,
		DetailContent: i.DetailContent,
		Icon:          i.Icon,
		CategoryID:    i.CategoryID,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
