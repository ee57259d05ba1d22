package auth

import (
	"errors"
	"net/http"

	"vales/internal/pkg/response"
	"vales/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /auth. guards run before login (rate limiting).
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, guards ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", append(guards, h.Login)...)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User: UserPublic{
			ID:    res.User.ID,
			Role:  string(res.User.Role),
			Name:  res.User.Name,
			Email: res.User.Email,
			Local: res.User.Local,
		},
	})
}
