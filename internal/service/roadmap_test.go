package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-silat/km-silat-api/internal/domain"
)

func TestRoadmapService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewRoadmapService(newFakeRoadmapRepo())

	seni, err := svc.CreateCategory(ctx, domain.Category{Title: "Kategori Seni & Budaya"})
	require.NoError(t, err)
	assert.Equal(t, "kategori-seni-budaya", seni.Slug)

	tests := []struct {
		name    string
		in      domain.Category
		wantErr error
	}{
		{name: "slug taken", in: domain.Category{Title: "Seni", Slug: "kategori-seni-budaya"}, wantErr: ErrCategorySlugExists},
		{name: "derived slug taken", in: domain.Category{Title: "Kategori Seni Budaya"}, wantErr: ErrCategorySlugExists},
		{name: "no slug from title", in: domain.Category{Title: "!!!"}, wantErr: ErrInvalidSlug},
		{name: "unknown parent", in: domain.Category{Title: "Tunggal", ParentID: ptr("missing")}, wantErr: ErrParentCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	tunggal, err := svc.CreateCategory(ctx, domain.Category{Title: "Tunggal", ParentID: &seni.ID})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, domain.Category{Title: "Tangan Kosong", ParentID: &tunggal.ID})
	assert.ErrorIs(t, err, ErrCategoryDepth)

	children, err := svc.ListSubCategories(ctx, seni.Slug)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "tunggal", children[0].Slug)

	_, err = svc.ListSubCategories(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRoadmapService_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewRoadmapService(newFakeRoadmapRepo())

	tanding, err := svc.CreateCategory(ctx, domain.Category{Title: "Tanding"})
	require.NoError(t, err)
	seni, err := svc.CreateCategory(ctx, domain.Category{Title: "Seni"})
	require.NoError(t, err)
	tunggal, err := svc.CreateCategory(ctx, domain.Category{Title: "Tunggal", ParentID: &seni.ID})
	require.NoError(t, err)

	t.Run("empty slug keeps current", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, domain.Category{ID: tanding.ID, Title: "Tanding Baru"})
		require.NoError(t, err)
		assert.Equal(t, "tanding", updated.Slug)
		assert.Equal(t, "Tanding Baru", updated.Title)
	})

	t.Run("slug of another category", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Category{ID: tanding.ID, Title: "Tanding", Slug: "seni"})
		assert.ErrorIs(t, err, ErrCategorySlugExists)
	})

	t.Run("own parent", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Category{ID: tanding.ID, Title: "Tanding", ParentID: &tanding.ID})
		assert.ErrorIs(t, err, ErrCategorySelfParent)
	})

	t.Run("category with children cannot get a parent", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Category{ID: seni.ID, Title: "Seni", ParentID: &tanding.ID})
		assert.ErrorIs(t, err, ErrCategoryDepth)
	})

	t.Run("parent must be a root", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Category{ID: tanding.ID, Title: "Tanding", ParentID: &tunggal.ID})
		assert.ErrorIs(t, err, ErrCategoryDepth)
	})

	t.Run("move sub-category", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, domain.Category{ID: tunggal.ID, Title: "Tunggal", ParentID: &tanding.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, tanding.ID, *updated.ParentID)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, domain.Category{ID: "missing", Title: "x"})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestRoadmapService_ListItemsByCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewRoadmapService(newFakeRoadmapRepo())

	tanding, err := svc.CreateCategory(ctx, domain.Category{Title: "Tanding"})
	require.NoError(t, err)
	empty, err := svc.CreateCategory(ctx, domain.Category{Title: "Kosong"})
	require.NoError(t, err)

	for _, id := range []string{"dasar-kuda-kuda", "pukulan-dasar"} {
		_, err = svc.CreateItem(ctx, domain.Item{ID: id, Title: id, CategoryID: tanding.ID, Label: domain.LabelTechnique})
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		key     string
		wantLen int
	}{
		{name: "by id", key: tanding.ID, wantLen: 2},
		{name: "by slug", key: "tanding", wantLen: 2},
		{name: "empty category", key: empty.ID, wantLen: 0},
		{name: "unknown key", key: "missing", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.ListItemsByCategory(ctx, tt.key)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestRoadmapService_Items(t *testing.T) {
	ctx := context.Background()
	svc := NewRoadmapService(newFakeRoadmapRepo())

	tanding, err := svc.CreateCategory(ctx, domain.Category{Title: "Tanding"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, domain.Item{ID: "pukulan-dasar", Title: "Pukulan", CategoryID: tanding.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.VideoTypeYoutube, item.VideoType)
	assert.Equal(t, domain.DefaultItemIcon, item.Icon)

	_, err = svc.CreateItem(ctx, domain.Item{ID: "pukulan-dasar", Title: "Pukulan", CategoryID: tanding.ID})
	assert.ErrorIs(t, err, ErrItemExists)

	_, err = svc.CreateItem(ctx, domain.Item{ID: "tendangan", Title: "Tendangan", CategoryID: "missing"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	updated, err := svc.UpdateItem(ctx, domain.Item{
		ID:         "pukulan-dasar",
		Title:      "Pukulan Lurus",
		CategoryID: tanding.ID,
		VideoType:  domain.VideoTypeInstagram,
		Icon:       "punch",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VideoTypeInstagram, updated.VideoType)
	assert.Equal(t, "punch", updated.Icon)

	_, err = svc.UpdateItem(ctx, domain.Item{ID: "missing", CategoryID: tanding.ID})
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, svc.DeleteCategory(ctx, tanding.ID))
	_, err = svc.GetItemDetail(ctx, "pukulan-dasar")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
