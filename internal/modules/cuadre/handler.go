package cuadre

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"vales/internal/domain"
	"vales/internal/middleware"
	"vales/internal/modules/voucher"
	"vales/internal/pkg/money"
	"vales/internal/pkg/report"
	"vales/internal/pkg/response"
	"vales/internal/pkg/validator"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service *Service
	money   *money.Formatter
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		money:   money.NewFormatter(money.ChileanSpanish),
	}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	cuadre := protected.Group("/cuadre")
	{
		cuadre.GET("/mio", h.Own)

		approvers := cuadre.Group("", middleware.ApproversOnly())
		approvers.GET("", h.Daily)
		approvers.GET("/pdf", h.PDF)
		approvers.GET("/xlsx", h.XLSX)
	}
}

func actorFrom(c *gin.Context) voucher.Actor {
	return voucher.Actor{
		ID:   middleware.UserID(c),
		Role: domain.UserRole(middleware.Role(c)),
		Name: middleware.UserName(c),
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDay):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Internal(c, err)
	}
}

func (h *Handler) load(c *gin.Context, own bool) (*Report, bool) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", validator.Fields(err))
		return nil, false
	}

	var (
		r   *Report
		err error
	)
	if own {
		r, err = h.service.Own(c.Request.Context(), actorFrom(c), q)
	} else {
		r, err = h.service.Daily(c.Request.Context(), actorFrom(c), q)
	}
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return r, true
}

func (h *Handler) Daily(c *gin.Context) {
	if r, ok := h.load(c, false); ok {
		response.Success(c, http.StatusOK, gin.H{"cuadre": r})
	}
}

func (h *Handler) Own(c *gin.Context) {
	if r, ok := h.load(c, true); ok {
		response.Success(c, http.StatusOK, gin.H{"cuadre": r})
	}
}

func (h *Handler) PDF(c *gin.Context) {
	h.export(c, "pdf", pdfContentType, report.WritePDF)
}

func (h *Handler) XLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, report.WriteXLSX)
}

type writeFunc func(w io.Writer, doc report.Document, f *money.Formatter) error

func (h *Handler) export(c *gin.Context, ext, contentType string, write writeFunc) {
	r, ok := h.load(c, false)
	if !ok {
		return
	}

	// render fully before writing headers so failures still get a JSON error
	var buf bytes.Buffer
	if err := write(&buf, Document(r), h.money); err != nil {
		response.Internal(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cuadre-`+r.Day+`.`+ext+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
