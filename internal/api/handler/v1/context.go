package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/api/middleware"
	"github.com/km-silat/km-silat-api/internal/domain"
)

var errNoPrincipal = errors.New("no authenticated user in context")

func getPrincipalFromContext(ctx *gin.Context) (domain.Principal, *response.Err) {
	p, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return domain.Principal{}, response.ErrUnauthorized(errNoPrincipal)
	}

	return p, nil
}

// bindAndValidate decodes the JSON body into req and runs its validation rules.
func bindAndValidate(ctx *gin.Context, req interface{ Validate() error }) *response.Err {
	if err := ctx.ShouldBindJSON(req); err != nil {
		return response.ErrBadRequest(err)
	}
	if err := req.Validate(); err != nil {
		return response.ErrBadRequest(err)
	}

	return nil
}
