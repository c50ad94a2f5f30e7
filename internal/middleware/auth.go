package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/pkg/response"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

const (
	CtxClaimsKey  = "authClaims"
	CtxAdminIDKey = "adminID"
	CtxAdminKey   = "admin"
)

// AdminLookup resolves the administrator behind a token.
type AdminLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
}

// Auth enforces bearer JWT authentication. The token must be valid and the
// administrator it names must still exist.
func Auth(jwt *iauth.JWTService, admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			unauthorized(c)
			return
		}

		claims, err := jwt.ValidateAccessToken(strings.TrimSpace(authz[7:]))
		if err != nil {
			unauthorized(c)
			return
		}

		if admins != nil {
			admin, err := admins.GetByID(c.Request.Context(), claims.AdminID)
			if errors.Is(err, apperrors.ErrNotFound) {
				unauthorized(c)
				return
			}
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			c.Set(CtxAdminKey, admin)
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxAdminIDKey, claims.AdminID)
		c.Next()
	}
}

// CurrentAdmin returns the administrator stored by Auth.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(CtxAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok && admin != nil
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, apperrors.ErrUnauthorized)
	c.Abort()
}
