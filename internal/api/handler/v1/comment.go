package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/request"
	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/api/middleware"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

type CommentService interface {
	ListComments(ctx context.Context, itemID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error)
	DeleteComment(ctx context.Context, id string, principal *domain.Principal, authorName string) (domain.Comment, error)
	ToggleLike(ctx context.Context, id string) (domain.Comment, error)
}

type CommentPublisher interface {
	Publish(event CommentEvent)
}

type CommentHandler struct {
	svc       CommentService
	publisher CommentPublisher
}

func NewCommentHandler(svc CommentService, publisher CommentPublisher) *CommentHandler {
	return &CommentHandler{
		svc:       svc,
		publisher: publisher,
	}
}

// HandleListComments godoc
// @Summary      Comment threads of a roadmap item
// @Description  Top-level comments newest first, each with its replies oldest first.
// @Tags         comments
// @Produce      json
// @Param        id       path       string true "item id"
// @Success      200      {array}    domain.Comment
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id}/comments [get]
func (h *CommentHandler) HandleListComments(ctx *gin.Context) {
	comments, err := h.svc.ListComments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListComments -> h.svc.ListComments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

// HandleCreateComment godoc
// @Summary      Comment on a roadmap item
// @Description  author_name defaults to "Anonymous". A reply to a reply is attached to the top-level comment.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id       path       string true "item id"
// @Param        request   body      request.CommentRequest true "request body"
// @Success      201      {object}   domain.Comment
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id}/comments [post]
func (h *CommentHandler) HandleCreateComment(ctx *gin.Context) {
	itemID := ctx.Param("id")

	var req request.CommentRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	comment, err := h.svc.CreateComment(ctx.Request.Context(), domain.Comment{
		Body:       req.Body,
		AuthorName: req.AuthorName,
		ItemID:     itemID,
		ParentID:   req.ParentID,
	})
	if err != nil {
		h.renderErr(ctx, "HandleCreateComment", "h.svc.CreateComment", itemID, err)
		return
	}

	h.publisher.Publish(CommentEvent{Type: CommentCreated, ItemID: comment.ItemID, Comment: comment})
	ctx.JSON(http.StatusCreated, comment)
}

// HandleDeleteComment godoc
// @Summary      Delete a comment and its replies
// @Description  Allowed with an ADMIN bearer token, or when author_name matches the comment's author.
// @Tags         comments
// @Produce      json
// @Param        id           path       string true  "comment id"
// @Param        author_name  query      string false "name the comment was posted under"
// @Success      200      {object}   response.Message
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comments/{id} [delete]
// @Security BearerAuth
func (h *CommentHandler) HandleDeleteComment(ctx *gin.Context) {
	id := ctx.Param("id")

	var principal *domain.Principal
	if p, ok := middleware.PrincipalFromContext(ctx); ok {
		principal = &p
	}

	comment, err := h.svc.DeleteComment(ctx.Request.Context(), id, principal, ctx.Query("author_name"))
	if err != nil {
		h.renderErr(ctx, "HandleDeleteComment", "h.svc.DeleteComment", id, err)
		return
	}

	h.publisher.Publish(CommentEvent{Type: CommentDeleted, ItemID: comment.ItemID, Comment: comment})
	ctx.JSON(http.StatusOK, response.Message{Message: "comment deleted"})
}

// HandleToggleLike godoc
// @Summary      Toggle the like flag of a comment
// @Description  One shared flag per comment: each call flips it and moves like_count by one.
// @Tags         comments
// @Produce      json
// @Param        id       path       string true "comment id"
// @Success      200      {object}   domain.Comment
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comments/{id}/like [post]
func (h *CommentHandler) HandleToggleLike(ctx *gin.Context) {
	id := ctx.Param("id")

	comment, err := h.svc.ToggleLike(ctx.Request.Context(), id)
	if err != nil {
		h.renderErr(ctx, "HandleToggleLike", "h.svc.ToggleLike", id, err)
		return
	}

	h.publisher.Publish(CommentEvent{Type: CommentLiked, ItemID: comment.ItemID, Comment: comment})
	ctx.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) renderErr(ctx *gin.Context, handler, call, id string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCommentBody):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyCommentBody))
	case errors.Is(err, service.ErrInvalidParentComment):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidParentComment))
	case errors.Is(err, service.ErrCommentForbidden):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrCommentForbidden))
	case errors.Is(err, service.ErrItemNotFound):
		response.RenderErr(ctx, response.ErrNotFound("item", "id", id))
	case errors.Is(err, service.ErrParentCommentNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound(service.ErrParentCommentNotFound))
	case errors.Is(err, service.ErrCommentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("comment", "id", id))
	default:
		err = fmt.Errorf("v1.%s -> %s -> %w", handler, call, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
