package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/pkg/jwthelper"
)

const ContextPrincipalKey = "principal"

var (
	errMissingToken  = errors.New("missing bearer token")
	errRoleForbidden = errors.New("you do not have permission to perform this action")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a bearer token (401) or with an invalid or expired one
// (403). On success the principal is stored in the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken(err))
			return
		}

		ctx.Set(ContextPrincipalKey, claims.Principal())
		ctx.Next()
	}
}

// OptionalJWT attaches the principal when a valid token is present and never rejects.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, ok := bearerToken(ctx); ok {
			if claims, err := jwthelper.ParseToken(a.signingKey, token); err == nil {
				ctx.Set(ContextPrincipalKey, claims.Principal())
			}
		}
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, ok := PrincipalFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		for _, role := range roles {
			if p.Role == role {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(errRoleForbidden))
	}
}

func PrincipalFromContext(ctx *gin.Context) (domain.Principal, bool) {
	v, ok := ctx.Get(ContextPrincipalKey)
	if !ok {
		return domain.Principal{}, false
	}

	p, ok := v.(domain.Principal)
	return p, ok
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
