package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lovweb/transcript-studio/errors"
	"github.com/lovweb/transcript-studio/internal/infrastructure/http/middleware"
	"github.com/lovweb/transcript-studio/internal/usecase/auth"
)

// AuthHandler exposes the session endpoints
type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type meResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	return HandleSuccess(h.logger, c, meResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	})
}

// Logout handles POST /v1/auth/logout. The presented token is revoked until
// its natural expiry; an absent or invalid token is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.ExtractToken(c)
	if token != "" {
		if err := h.service.Logout(c.Request().Context(), token); err != nil {
			return HandleError(h.logger, c, errors.ErrCacheFailed("revoke token", err))
		}
	}

	return HandleSuccess(h.logger, c, map[string]string{"status": "logged_out"})
}
