package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{ name string }

func (m pingModule) Name() string { return m.name }

func (m pingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistryMountsModulesUnderAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	reg := NewRegistry(e, nil)
	reg.Use(func(c *gin.Context) { c.Set("mw", "global") })
	reg.Add(pingModule{"a"})
	reg.Add(pingModule{"b"})
	reg.RegisterAll()

	assert.Equal(t, []string{"a", "b"}, reg.Modules())

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/b", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "global", w.Body.String())
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	reg := NewRegistry(gin.New(), nil)
	reg.Add(pingModule{"a"})
	assert.Panics(t, func() { reg.Add(pingModule{"a"}) })
}
