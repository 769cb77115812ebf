package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/request"
	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

type RoadmapService interface {
	ListRootCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	ListSubCategories(ctx context.Context, parentSlug string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListItemsByCategory(ctx context.Context, idOrSlug string) ([]domain.Item, error)
	ListItemsByCategorySlug(ctx context.Context, slug string) ([]domain.Item, error)
	GetItemDetail(ctx context.Context, id string) (domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type RoadmapHandler struct {
	svc RoadmapService
}

func NewRoadmapHandler(svc RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{
		svc: svc,
	}
}

// HandleListRootCategories godoc
// @Summary      Roadmap tree
// @Description  Root categories with their items and sub-categories (each with its items).
// @Tags         roadmap
// @Produce      json
// @Success      200      {array}    domain.Category
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories [get]
func (h *RoadmapHandler) HandleListRootCategories(ctx *gin.Context) {
	categories, err := h.svc.ListRootCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRootCategories -> h.svc.ListRootCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleGetCategoryBySlug godoc
// @Summary      Get a category by slug
// @Tags         roadmap
// @Produce      json
// @Param        slug     path       string true "category slug"
// @Success      200      {object}   domain.Category
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories/slug/{slug} [get]
func (h *RoadmapHandler) HandleGetCategoryBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	category, err := h.svc.GetCategoryBySlug(ctx.Request.Context(), slug)
	if err != nil {
		h.renderCategoryErr(ctx, "HandleGetCategoryBySlug", "h.svc.GetCategoryBySlug", "slug", slug, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleListSubCategories godoc
// @Summary      Sub-categories of a category
// @Tags         roadmap
// @Produce      json
// @Param        parentSlug path     string true "parent category slug"
// @Success      200      {array}    domain.Category
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories/{parentSlug}/subcategories [get]
func (h *RoadmapHandler) HandleListSubCategories(ctx *gin.Context) {
	parentSlug := ctx.Param("parentSlug")

	categories, err := h.svc.ListSubCategories(ctx.Request.Context(), parentSlug)
	if err != nil {
		h.renderCategoryErr(ctx, "HandleListSubCategories", "h.svc.ListSubCategories", "slug", parentSlug, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Description  The slug is derived from the title when omitted. A parent must be a root category.
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Param        request   body      request.CategoryRequest true "request body"
// @Success      201      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories [post]
// @Security BearerAuth
func (h *RoadmapHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CategoryRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), req.Category())
	if err != nil {
		h.renderCategoryErr(ctx, "HandleCreateCategory", "h.svc.CreateCategory", "id", "", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleUpdateCategory godoc
// @Summary      Update a category
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Param        id       path       string true "category id"
// @Param        request   body      request.CategoryRequest true "request body"
// @Success      200      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories/{id} [put]
// @Security BearerAuth
func (h *RoadmapHandler) HandleUpdateCategory(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.CategoryRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	c := req.Category()
	c.ID = id

	category, err := h.svc.UpdateCategory(ctx.Request.Context(), c)
	if err != nil {
		h.renderCategoryErr(ctx, "HandleUpdateCategory", "h.svc.UpdateCategory", "id", id, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleDeleteCategory godoc
// @Summary      Delete a category
// @Description  Items, sub-categories and their comments are deleted with it.
// @Tags         roadmap
// @Produce      json
// @Param        id       path       string true "category id"
// @Success      200      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-categories/{id} [delete]
// @Security BearerAuth
func (h *RoadmapHandler) HandleDeleteCategory(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.svc.DeleteCategory(ctx.Request.Context(), id); err != nil {
		h.renderCategoryErr(ctx, "HandleDeleteCategory", "h.svc.DeleteCategory", "id", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "category deleted"})
}

// HandleListItemsByCategory godoc
// @Summary      Items of a category
// @Description  The argument is tried as a category id, then as a category slug.
// @Tags         roadmap
// @Produce      json
// @Param        categoryIdOrSlug path string true "category id or slug"
// @Success      200      {array}    domain.Item
// @Failure      500      {object}   response.Err
// @Router       /roadmaps/{categoryIdOrSlug} [get]
func (h *RoadmapHandler) HandleListItemsByCategory(ctx *gin.Context) {
	items, err := h.svc.ListItemsByCategory(ctx.Request.Context(), ctx.Param("categoryIdOrSlug"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListItemsByCategory -> h.svc.ListItemsByCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleListItemsByCategorySlug godoc
// @Summary      Items of a category, by slug
// @Tags         roadmap
// @Produce      json
// @Param        slug     path       string true "category slug"
// @Success      200      {array}    domain.Item
// @Failure      500      {object}   response.Err
// @Router       /roadmaps/slug/{slug} [get]
func (h *RoadmapHandler) HandleListItemsByCategorySlug(ctx *gin.Context) {
	items, err := h.svc.ListItemsByCategorySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListItemsByCategorySlug -> h.svc.ListItemsByCategorySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetItem godoc
// @Summary      Item detail with its comment threads
// @Description  Top-level comments newest first, replies oldest first.
// @Tags         roadmap
// @Produce      json
// @Param        id       path       string true "item id"
// @Success      200      {object}   domain.Item
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id} [get]
func (h *RoadmapHandler) HandleGetItem(ctx *gin.Context) {
	id := ctx.Param("id")

	item, err := h.svc.GetItemDetail(ctx.Request.Context(), id)
	if err != nil {
		h.renderItemErr(ctx, "HandleGetItem", "h.svc.GetItemDetail", id, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleCreateItem godoc
// @Summary      Create a roadmap item
// @Description  The caller chooses the id, which is used as the item's slug.
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateItemRequest true "request body"
// @Success      201      {object}   domain.Item
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items [post]
// @Security BearerAuth
func (h *RoadmapHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.CreateItemRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), req.Item(req.ID))
	if err != nil {
		h.renderItemErr(ctx, "HandleCreateItem", "h.svc.CreateItem", req.ID, err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateItem godoc
// @Summary      Update a roadmap item
// @Tags         roadmap
// @Accept       json
// @Produce      json
// @Param        id       path       string true "item id"
// @Param        request   body      request.ItemRequest true "request body"
// @Success      200      {object}   domain.Item
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id} [put]
// @Security BearerAuth
func (h *RoadmapHandler) HandleUpdateItem(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.ItemRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := h.svc.UpdateItem(ctx.Request.Context(), req.Item(id))
	if err != nil {
		h.renderItemErr(ctx, "HandleUpdateItem", "h.svc.UpdateItem", id, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteItem godoc
// @Summary      Delete a roadmap item and its comments
// @Tags         roadmap
// @Produce      json
// @Param        id       path       string true "item id"
// @Success      200      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id} [delete]
// @Security BearerAuth
func (h *RoadmapHandler) HandleDeleteItem(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.svc.DeleteItem(ctx.Request.Context(), id); err != nil {
		h.renderItemErr(ctx, "HandleDeleteItem", "h.svc.DeleteItem", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "item deleted"})
}

func (h *RoadmapHandler) renderCategoryErr(ctx *gin.Context, handler, call, key, value string, err error) {
	switch {
	case errors.Is(err, service.ErrParentCategoryNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound(service.ErrParentCategoryNotFound))
	case errors.Is(err, service.ErrCategoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound("category", key, value))
	case errors.Is(err, service.ErrCategorySlugExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrCategorySlugExists))
	case errors.Is(err, service.ErrCategoryDepth):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryDepth))
	case errors.Is(err, service.ErrCategorySelfParent):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategorySelfParent))
	case errors.Is(err, service.ErrInvalidSlug):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSlug))
	default:
		err = fmt.Errorf("v1.%s -> %s -> %w", handler, call, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func (h *RoadmapHandler) renderItemErr(ctx *gin.Context, handler, call, id string, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		response.RenderErr(ctx, response.ErrNotFound("item", "id", id))
	case errors.Is(err, service.ErrCategoryNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound(service.ErrCategoryNotFound))
	case errors.Is(err, service.ErrItemExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrItemExists))
	default:
		err = fmt.Errorf("v1.%s -> %s -> %w", handler, call, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
