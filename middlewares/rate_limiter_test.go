package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func hitFrom(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestStrictRateLimiterIsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewStrictRateLimiter(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1:1000"))

	// one client burning its budget does not lock out another
	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:1000"))
}

func TestRateLimitIsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limiter := NewRateLimiter(2, 1)
	r.POST("/login", limiter.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1:1000"))

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:1000"))
}
