package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// FromQuery reads ?page=&limit= falling back to defaults on garbage input.
func FromQuery(c *gin.Context) Params {
	return Normalize(atoi(c.Query("page")), atoi(c.Query("limit")))
}

func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func NewMeta(p Params, total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
