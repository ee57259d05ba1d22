package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vales/internal/pkg/response"
	"vales/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects an admin-only group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", validator.Fields(err))
		return
	}

	d, err := h.service.Get(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDay), errors.Is(err, ErrInvalidRange):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Internal(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dashboard": d})
}
