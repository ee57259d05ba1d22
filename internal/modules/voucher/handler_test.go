package voucher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vales/internal/middleware"
)

func setupRouter(h *Handler, actor Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, actor.ID)
		c.Set(middleware.CtxRole, string(actor.Role))
		c.Set(middleware.CtxUserName, actor.Name)
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSONRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

type valeEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Vale View `json:"vale"`
	} `json:"data"`
}

func TestHandler_CreateApproveFlow(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	pro := setupRouter(h, f.pro)
	host := setupRouter(h, f.host)

	w := doJSONRequest(pro, http.MethodPost, "/api/v1/vales/servicios",
		`{"amount":"10000","description":"Corte","payment_method":"efectivo"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created valeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "S-250301-001", created.Data.Vale.Code)
	id := created.Data.Vale.ID

	w = doJSONRequest(pro, http.MethodPost, fmt.Sprintf("/api/v1/vales/%d/aprobar", id), `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSONRequest(host, http.MethodPost, fmt.Sprintf("/api/v1/vales/%d/aprobar", id), `{"split_percent":60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SPLIT")

	w = doJSONRequest(host, http.MethodPost, fmt.Sprintf("/api/v1/vales/%d/aprobar", id), `{"split_percent":50,"bonus":1000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var approved valeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	require.NotNil(t, approved.Data.Vale.Share)
	assert.Equal(t, "6000", approved.Data.Vale.Share.Professional.String())

	w = doJSONRequest(host, http.MethodPost, fmt.Sprintf("/api/v1/vales/%d/rechazar", id), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_DECIDED")
}

func TestHandler_ListAndPending(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	f.service(t, f.pro, 10000)
	f.service(t, f.other, 5000)

	w := doJSONRequest(setupRouter(h, f.pro), http.MethodGet, "/api/v1/vales?tipo=service", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = doJSONRequest(setupRouter(h, f.pro), http.MethodGet, "/api/v1/vales/pendientes", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSONRequest(setupRouter(h, f.admin), http.MethodGet, "/api/v1/vales/pendientes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)

	w = doJSONRequest(setupRouter(h, f.admin), http.MethodGet, "/api/v1/vales/resumen", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending":2`)
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	r := setupRouter(h, f.pro)

	w := doJSONRequest(r, http.MethodGet, "/api/v1/vales/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSONRequest(r, http.MethodGet, "/api/v1/vales/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSONRequest(r, http.MethodPost, "/api/v1/vales/gastos", `{"amount":0,"concept":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AMOUNT")

	w = doJSONRequest(r, http.MethodGet, "/api/v1/vales?desde=ayer", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
