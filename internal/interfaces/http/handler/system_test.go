package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSystemRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSystemHandler(nil)
	r := gin.New()
	r.GET("/system/ping", h.Ping)
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/health", h.Health)
	return r
}

func TestSystemHandler_Ping(t *testing.T) {
	w := performRequest(newSystemRouter(), http.MethodGet, "/system/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSystemHandler_Info(t *testing.T) {
	w := performRequest(newSystemRouter(), http.MethodGet, "/system/info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "LocalLoop API", data["name"])
	assert.NotEmpty(t, data["go_version"])
}

func TestSystemHandler_Health_NoDatabase(t *testing.T) {
	w := performRequest(newSystemRouter(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCategoryHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/categories", NewCategoryHandler().List)

	w := performRequest(r, http.MethodGet, "/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(16), body["rows"])
	assert.Contains(t, w.Body.String(), "dog-parents")
}
