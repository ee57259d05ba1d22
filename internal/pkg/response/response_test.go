package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSuccess(t *testing.T) {
	w := run(func(c *gin.Context) { Success(c, http.StatusCreated, gin.H{"id": 1}) })

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := run(func(c *gin.Context) { Error(c, http.StatusNotFound, "NOT_FOUND", "Voucher not found") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Voucher not found"}}`, w.Body.String())
}

func TestInternal_RecordsError(t *testing.T) {
	var recorded []*gin.Error
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		recorded = c.Errors
	})
	r.GET("/", func(c *gin.Context) { Internal(c, errors.New("db down")) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, recorded, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, w.Body.String(), "db down")
}
