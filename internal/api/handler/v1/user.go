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

type UserService interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id, callerID string) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List dashboard users
// @Description  Newest first. Password hashes are never returned.
// @Tags         users
// @Produce      json
// @Success      200      {array}    domain.User
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetUser godoc
// @Summary      Get a dashboard user
// @Tags         users
// @Produce      json
// @Param        id       path       string true "user id"
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{id} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id := ctx.Param("id")

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		h.renderErr(ctx, "HandleGetUser", "h.svc.GetUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleCreateUser godoc
// @Summary      Create a dashboard user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateUserRequest true "request body"
// @Success      201      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [post]
// @Security BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), domain.User{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.renderErr(ctx, "HandleCreateUser", "h.svc.CreateUser", "", err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleUpdateUser godoc
// @Summary      Update a dashboard user
// @Description  Only the provided fields change. A new password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path       string true "user id"
// @Param        request   body      request.UpdateUserRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{id} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.UpdateUserRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), id, req.Patch())
	if err != nil {
		h.renderErr(ctx, "HandleUpdateUser", "h.svc.UpdateUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a dashboard user
// @Description  An admin cannot delete their own account.
// @Tags         users
// @Produce      json
// @Param        id       path       string true "user id"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	caller, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), id, caller.ID); err != nil {
		h.renderErr(ctx, "HandleDeleteUser", "h.svc.DeleteUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "user deleted"})
}

func (h *UserHandler) renderErr(ctx *gin.Context, handler, call, id string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
	case errors.Is(err, service.ErrUsernameExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrUsernameExists))
	case errors.Is(err, service.ErrSelfDelete):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfDelete))
	case errors.Is(err, service.ErrPasswordTooLong):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrPasswordTooLong))
	default:
		err = fmt.Errorf("v1.%s -> %s -> %w", handler, call, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
