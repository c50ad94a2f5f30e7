package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/middleware"
	"github.com/vitrine-studio/vitrine/internal/services"
	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

// AuthHandler manages administrator login and token verification.
type AuthHandler struct {
	admins *services.AdminService
}

func NewAuthHandler(admins *services.AdminService) *AuthHandler {
	return &AuthHandler{admins: admins}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds services.Credentials
	if !bindAndValidate(c, &creds) {
		return
	}

	result, err := h.admins.Authenticate(requestContext(c), creds)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// POST /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"valid": true,
		"admin": services.Profile(admin),
	})
}

// POST /api/auth/logout
//
// Tokens are stateless, so logging out only asks the client to drop its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}
