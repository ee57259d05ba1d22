package voucher

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"vales/internal/domain"
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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	vales := protected.Group("/vales")
	{
		vales.POST("/servicios", h.CreateService)
		vales.POST("/gastos", h.CreateExpense)
		vales.GET("", h.List)
		vales.GET("/resumen", h.Summary)
		vales.GET("/pendientes", middleware.ApproversOnly(), h.Pending)
		vales.GET("/:id", h.Get)
		vales.POST("/:id/aprobar", middleware.ApproversOnly(), h.Approve)
		vales.POST("/:id/rechazar", middleware.ApproversOnly(), h.Reject)
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		ID:   middleware.UserID(c),
		Role: domain.UserRole(middleware.Role(c)),
		Name: middleware.UserName(c),
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVoucherNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Voucher not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can not access this voucher")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Voucher was already approved or rejected")
	case errors.Is(err, ErrInvalidSplit), errors.Is(err, ErrSplitOnExpense):
		response.Error(c, http.StatusBadRequest, "INVALID_SPLIT", err.Error())
	case errors.Is(err, ErrNegativeBonus):
		response.Error(c, http.StatusBadRequest, "INVALID_BONUS", err.Error())
	case errors.Is(err, ErrInvalidAmount):
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	case errors.Is(err, ErrDescriptionRequired),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInvalidDay):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInactiveUser):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", err.Error())
	default:
		response.Internal(c, err)
	}
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", validator.Fields(err))
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func voucherID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	v, err := h.service.CreateService(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"vale": v})
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	v, err := h.service.CreateExpense(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"vale": v})
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	p := pagination.FromQuery(c)

	list, total, err := h.service.List(c.Request.Context(), actorFrom(c), q, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, gin.H{"vales": list}, pagination.NewMeta(p, total))
}

func (h *Handler) Summary(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	s, err := h.service.Summary(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, s)
}

func (h *Handler) Pending(c *gin.Context) {
	list, err := h.service.Pending(c.Request.Context(), actorFrom(c), c.Query("local"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vales": list, "total": len(list)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := voucherID(c)
	if !ok {
		return
	}
	v, err := h.service.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vale": v})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := voucherID(c)
	if !ok {
		return
	}
	var req ApproveRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	v, err := h.service.Approve(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vale": v})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := voucherID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	v, err := h.service.Reject(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vale": v})
}
