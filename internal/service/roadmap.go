package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/pkg/slug"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var (
	ErrCategoryNotFound       = repository.ErrCategoryNotFound
	ErrCategorySlugExists     = repository.ErrCategorySlugExists
	ErrItemNotFound           = repository.ErrItemNotFound
	ErrItemExists             = repository.ErrItemExists
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrCategoryDepth          = errors.New("sub-categories can only be placed under a root category")
	ErrCategorySelfParent     = errors.New("a category cannot be its own parent")
	ErrInvalidSlug            = errors.New("a slug cannot be derived from the title")
)

type RoadmapRepository interface {
	FindRootCategories(ctx context.Context) ([]domain.Category, error)
	FindChildCategories(ctx context.Context, parentID string) ([]domain.Category, error)
	HasChildCategories(ctx context.Context, id string) (bool, error)
	FindCategoryByID(ctx context.Context, id string) (domain.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	FindItemsByCategoryID(ctx context.Context, categoryID string) ([]domain.Item, error)
	FindItemByID(ctx context.Context, id string) (domain.Item, error)
	FindItemWithComments(ctx context.Context, id string) (domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
}

type RoadmapService struct {
	repo RoadmapRepository
}

func NewRoadmapService(repo RoadmapRepository) *RoadmapService {
	return &RoadmapService{
		repo: repo,
	}
}

func (s *RoadmapService) ListRootCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindRootCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRootCategories -> %w", err)
	}

	return categories, nil
}

func (s *RoadmapService) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindCategoryBySlug -> %w", err)
	}

	return category, nil
}

func (s *RoadmapService) ListSubCategories(ctx context.Context, parentSlug string) ([]domain.Category, error) {
	parent, err := s.repo.FindCategoryBySlug(ctx, parentSlug)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCategoryBySlug -> %w", err)
	}

	children, err := s.repo.FindChildCategories(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindChildCategories -> %w", err)
	}

	return children, nil
}

// CreateCategory stores c, deriving its slug from the title when none is given.
func (s *RoadmapService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Title)
		if c.Slug == "" {
			return domain.Category{}, ErrInvalidSlug
		}
	}

	if err := s.checkSlugFree(ctx, c.Slug, ""); err != nil {
		return domain.Category{}, err
	}

	if c.ParentID != nil {
		if err := s.checkParent(ctx, *c.ParentID); err != nil {
			return domain.Category{}, err
		}
	}

	created, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

// UpdateCategory replaces the editable fields of the category c.ID. An empty slug keeps the
// current one.
func (s *RoadmapService) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	existing, err := s.repo.FindCategoryByID(ctx, c.ID)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}

	if c.Slug == "" {
		c.Slug = existing.Slug
	}
	if c.Slug != existing.Slug {
		if err = s.checkSlugFree(ctx, c.Slug, c.ID); err != nil {
			return domain.Category{}, err
		}
	}

	if c.ParentID != nil {
		if *c.ParentID == c.ID {
			return domain.Category{}, ErrCategorySelfParent
		}
		if err = s.checkParent(ctx, *c.ParentID); err != nil {
			return domain.Category{}, err
		}

		hasChildren, err := s.repo.HasChildCategories(ctx, c.ID)
		if err != nil {
			return domain.Category{}, fmt.Errorf("s.repo.HasChildCategories -> %w", err)
		}
		if hasChildren {
			return domain.Category{}, ErrCategoryDepth
		}
	}

	updated, err := s.repo.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.UpdateCategory -> %w", err)
	}

	return updated, nil
}

func (s *RoadmapService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}

	return nil
}

// ListItemsByCategory resolves idOrSlug as a category id first and, when that yields no items,
// as a category slug. An unknown category yields an empty list.
func (s *RoadmapService) ListItemsByCategory(ctx context.Context, idOrSlug string) ([]domain.Item, error) {
	items, err := s.repo.FindItemsByCategoryID(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItemsByCategoryID -> %w", err)
	}
	if len(items) > 0 {
		return items, nil
	}

	return s.ListItemsByCategorySlug(ctx, idOrSlug)
}

func (s *RoadmapService) ListItemsByCategorySlug(ctx context.Context, slug string) ([]domain.Item, error) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return []domain.Item{}, nil
		}

		return nil, fmt.Errorf("s.repo.FindCategoryBySlug -> %w", err)
	}

	items, err := s.repo.FindItemsByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItemsByCategoryID -> %w", err)
	}

	return items, nil
}

func (s *RoadmapService) GetItemDetail(ctx context.Context, id string) (domain.Item, error) {
	item, err := s.repo.FindItemWithComments(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindItemWithComments -> %w", err)
	}

	return item, nil
}

func (s *RoadmapService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if _, err := s.repo.FindCategoryByID(ctx, item.CategoryID); err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	applyItemDefaults(&item)

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.CreateItem -> %w", err)
	}

	return created, nil
}

func (s *RoadmapService) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if _, err := s.repo.FindItemByID(ctx, item.ID); err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}
	if _, err := s.repo.FindCategoryByID(ctx, item.CategoryID); err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	applyItemDefaults(&item)

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.UpdateItem -> %w", err)
	}

	return updated, nil
}

func (s *RoadmapService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteItem -> %w", err)
	}

	return nil
}

// CountCategories backs the database health probe.
func (s *RoadmapService) CountCategories(ctx context.Context) (int64, error) {
	count, err := s.repo.CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountCategories -> %w", err)
	}

	return count, nil
}

func (s *RoadmapService) checkSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("s.repo.SlugTaken -> %w", err)
	}
	if taken {
		return ErrCategorySlugExists
	}
	return nil
}

func (s *RoadmapService) checkParent(ctx context.Context, parentID string) error {
	parent, err := s.repo.FindCategoryByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrParentCategoryNotFound
		}
		return fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	if !parent.IsRoot() {
		return ErrCategoryDepth
	}
	return nil
}

func applyItemDefaults(item *domain.Item) {
	if item.VideoType == "" {
		item.VideoType = domain.VideoTypeYoutube
	}
	if item.Icon == "" {
		item.Icon = domain.DefaultItemIcon
	}
}
