package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(New(origins))
	router.GET("/grid", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	router := newRouter([]string{"https://admin.school.test/"})

	req, _ := http.NewRequest(http.MethodGet, "/grid", nil)
	req.Header.Set("Origin", "https://evil.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	router := newRouter([]string{"https://admin.school.test/"})

	req, _ := http.NewRequest(http.MethodGet, "/grid", nil)
	req.Header.Set("Origin", "https://admin.school.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://admin.school.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(nil)

	req, _ := http.NewRequest(http.MethodOptions, "/grid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
