package users

import (
	"errors"
	"net/http"
	"strconv"

	"vales/internal/middleware"
	"vales/internal/pkg/pagination"
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

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	me := protected.Group("/users")
	{
		me.GET("/me", h.GetMe)
		me.PUT("/me/password", h.ChangePassword)
	}
}

// RegisterAdminRoutes expects admin to be already gated by role.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.POST("/users/:id/activar", h.Activate)
	admin.POST("/users/:id/desactivar", h.Deactivate)
	admin.POST("/users/:id/password", h.ResetPassword)
	admin.GET("/locales", h.Locals)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Unknown role")
	case errors.Is(err, ErrWrongPassword):
		response.Error(c, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
	case errors.Is(err, ErrCannotDeactivate):
		response.Error(c, http.StatusConflict, "CANNOT_DEACTIVATE_SELF", "You can not deactivate your own account")
	default:
		response.Internal(c, err)
	}
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), middleware.UserID(c), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) ListUsers(c *gin.Context) {
	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", validator.Fields(err))
		return
	}
	p := pagination.FromQuery(c)

	list, total, err := h.service.ListUsers(c.Request.Context(), filter, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, gin.H{"users": list}, pagination.NewMeta(p, total))
}

func (h *Handler) Locals(c *gin.Context) {
	locals, err := h.service.Locals(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locales": locals})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *Handler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *Handler) setActive(c *gin.Context, active bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.service.SetActive(c.Request.Context(), middleware.UserID(c), id, active)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
