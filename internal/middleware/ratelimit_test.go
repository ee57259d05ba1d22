package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(3)
	defer rl.Stop()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}
