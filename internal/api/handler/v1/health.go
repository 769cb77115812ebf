package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200      {object}   response.Message
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Message{Message: "KM Silat API is running"})
}

type CategoryCounter interface {
	CountCategories(ctx context.Context) (int64, error)
}

type HealthHandler struct {
	svc CategoryCounter
}

func NewHealthHandler(svc CategoryCounter) *HealthHandler {
	return &HealthHandler{
		svc: svc,
	}
}

// HandleDBHealth godoc
// @Summary      Database health probe
// @Tags         health
// @Produce      json
// @Success      200      {object}   response.DBHealth
// @Failure      500      {object}   response.DBHealth
// @Router       /db-health [get]
func (h *HealthHandler) HandleDBHealth(ctx *gin.Context) {
	count, err := h.svc.CountCategories(ctx.Request.Context())
	if err != nil {
		zap.L().Error("database health check failed", zap.Error(fmt.Errorf("h.svc.CountCategories -> %w", err)))
		ctx.JSON(http.StatusInternalServerError, response.DBHealth{Status: "error"})

		return
	}

	ctx.JSON(http.StatusOK, response.DBHealth{Status: "ok", Categories: count})
}
