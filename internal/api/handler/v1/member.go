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

type MemberService interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	CreateMember(ctx context.Context, member domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error)
	DeleteMember(ctx context.Context, id string) error
	AddChampionship(ctx context.Context, c domain.Championship) (domain.Championship, error)
	UpdateChampionship(ctx context.Context, id string, patch domain.ChampionshipPatch) (domain.Championship, error)
	DeleteChampionship(ctx context.Context, id string) error
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{
		svc: svc,
	}
}

// HandleListMembers godoc
// @Summary      List members with their championships
// @Tags         members
// @Produce      json
// @Success      200      {array}    domain.Member
// @Failure      500      {object}   response.Err
// @Router       /members [get]
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	members, err := h.svc.ListMembers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleCreateMember godoc
// @Summary      Create a member
// @Description  specialty defaults to "-" when omitted.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateMemberRequest true "request body"
// @Success      201      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members [post]
// @Security BearerAuth
func (h *MemberHandler) HandleCreateMember(ctx *gin.Context) {
	var req request.CreateMemberRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.CreateMember(ctx.Request.Context(), domain.Member{
		Name:      req.Name,
		Role:      req.Role,
		Cohort:    req.Cohort,
		Specialty: req.Specialty,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateMember -> h.svc.CreateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// HandleUpdateMember godoc
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path       string true "member id"
// @Param        request   body      request.UpdateMemberRequest true "request body"
// @Success      200      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{id} [put]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateMember(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.UpdateMemberRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.UpdateMember(ctx.Request.Context(), id, req.Patch())
	if err != nil {
		h.renderErr(ctx, "HandleUpdateMember", "h.svc.UpdateMember", id, err)
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleDeleteMember godoc
// @Summary      Delete a member and their championships
// @Tags         members
// @Produce      json
// @Param        id       path       string true "member id"
// @Success      200      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{id} [delete]
// @Security BearerAuth
func (h *MemberHandler) HandleDeleteMember(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.svc.DeleteMember(ctx.Request.Context(), id); err != nil {
		h.renderErr(ctx, "HandleDeleteMember", "h.svc.DeleteMember", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "member deleted"})
}

// HandleAddChampionship godoc
// @Summary      Add a championship record to a member
// @Description  year accepts a number or a numeric string.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path       string true "member id"
// @Param        request   body      request.CreateChampionshipRequest true "request body"
// @Success      201      {object}   domain.Championship
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{id}/championships [post]
// @Security BearerAuth
func (h *MemberHandler) HandleAddChampionship(ctx *gin.Context) {
	memberID := ctx.Param("id")

	var req request.CreateChampionshipRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	championship, err := h.svc.AddChampionship(ctx.Request.Context(), domain.Championship{
		Name:        req.Name,
		Year:        int(req.Year),
		Achievement: req.Achievement,
		MemberID:    memberID,
	})
	if err != nil {
		h.renderErr(ctx, "HandleAddChampionship", "h.svc.AddChampionship", memberID, err)
		return
	}

	ctx.JSON(http.StatusCreated, championship)
}

// HandleUpdateChampionship godoc
// @Summary      Update a championship record
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path       string true "championship id"
// @Param        request   body      request.UpdateChampionshipRequest true "request body"
// @Success      200      {object}   domain.Championship
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /championships/{id} [put]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateChampionship(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.UpdateChampionshipRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	championship, err := h.svc.UpdateChampionship(ctx.Request.Context(), id, req.Patch())
	if err != nil {
		h.renderErr(ctx, "HandleUpdateChampionship", "h.svc.UpdateChampionship", id, err)
		return
	}

	ctx.JSON(http.StatusOK, championship)
}

// HandleDeleteChampionship godoc
// @Summary      Delete a championship record
// @Tags         members
// @Produce      json
// @Param        id       path       string true "championship id"
// @Success      200      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /championships/{id} [delete]
// @Security BearerAuth
func (h *MemberHandler) HandleDeleteChampionship(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.svc.DeleteChampionship(ctx.Request.Context(), id); err != nil {
		h.renderErr(ctx, "HandleDeleteChampionship", "h.svc.DeleteChampionship", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "championship deleted"})
}

func (h *MemberHandler) renderErr(ctx *gin.Context, handler, call, id string, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.RenderErr(ctx, response.ErrNotFound("member", "id", id))
	case errors.Is(err, service.ErrChampionshipNotFound):
		response.RenderErr(ctx, response.ErrNotFound("championship", "id", id))
	default:
		err = fmt.Errorf("v1.%s -> %s -> %w", handler, call, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
