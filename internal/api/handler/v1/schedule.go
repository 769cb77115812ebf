package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/request"
	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

type ScheduleService interface {
	ListSchedule(ctx context.Context) ([]domain.ScheduleEntry, error)
	UpdateSchedule(ctx context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error)
}

type ScheduleHandler struct {
	svc ScheduleService
}

func NewScheduleHandler(svc ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		svc: svc,
	}
}

// HandleListSchedule godoc
// @Summary      Weekly training schedule
// @Description  Seven entries ordered by id, 0 = Minggu (Sunday) to 6 = Sabtu (Saturday).
// @Tags         schedule
// @Produce      json
// @Success      200      {array}    domain.ScheduleEntry
// @Failure      500      {object}   response.Err
// @Router       /schedule [get]
func (h *ScheduleHandler) HandleListSchedule(ctx *gin.Context) {
	entries, err := h.svc.ListSchedule(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSchedule -> h.svc.ListSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleUpdateSchedule godoc
// @Summary      Update one weekday
// @Description  Only the provided fields change.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        id       path       int    true "weekday, 0-6"
// @Param        request   body      request.UpdateScheduleRequest true "request body"
// @Success      200      {object}   domain.ScheduleEntry
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /schedule/{id} [put]
// @Security BearerAuth
func (h *ScheduleHandler) HandleUpdateSchedule(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidScheduleID))
		return
	}

	var req request.UpdateScheduleRequest
	if respErr := bindAndValidate(ctx, &req); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entry, err := h.svc.UpdateSchedule(ctx.Request.Context(), id, domain.ScheduleUpdate{
		Status:   req.Status,
		Category: req.Category,
		Time:     req.Time,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScheduleID):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidScheduleID))
		case errors.Is(err, service.ErrScheduleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", strconv.Itoa(id)))
		default:
			err = fmt.Errorf("v1.HandleUpdateSchedule -> h.svc.UpdateSchedule -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, entry)
}
