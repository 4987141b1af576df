package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/amasacademy/portal/site-service/internal/config"
	"github.com/amasacademy/portal/site-service/internal/sections"
	"github.com/amasacademy/portal/site-service/internal/server"
)

func setupRouter(t *testing.T) (*gin.Engine, *sections.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := sections.New()
	srv := server.New(config.Config{Addr: "localhost:0", RPS: 100}, reg)

	router := gin.New()
	router.GET("/resolve", srv.ResolvePage)
	router.POST("/sections/:id/ready", srv.SectionReady)
	router.GET("/sections/:id/wait", srv.AwaitSection)
	return router, reg
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestResolveKnownPath(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/resolve?path=/tienda")

	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Page string `json:"page"`
		Path string `json:"path"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "tienda", res.Page)
	assert.Equal(t, "/tienda", res.Path)
}

func TestResolveUnknownPathDefaultsToHome(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/resolve?path=/no-such-page")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":"home"`)
}

func TestResolveHonorsRedirectParam(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/resolve?path=/&redirect=/navidad")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":"registro-actividad-navidad"`)
}

func TestAwaitReadySection(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/sections/galeria/ready", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/sections/galeria/wait?wait_ms=100")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"found":true`)
}

func TestAwaitAbsentSectionNoError(t *testing.T) {
	router, _ := setupRouter(t)

	start := time.Now()
	w := get(router, "/sections/no-existe/wait?wait_ms=50")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"found":false`)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAwaitOversizedWaitClamped(t *testing.T) {
	router, _ := setupRouter(t)

	start := time.Now()
	w := get(router, "/sections/no-existe/wait?wait_ms=86400000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"found":false`)
	assert.Less(t, time.Since(start), 2*sections.DefaultWait)
}

func TestAwaitSectionUnblocksOnReady(t *testing.T) {
	router, reg := setupRouter(t)

	go func() {
		time.Sleep(20 * time.Millisecond)
		reg.MarkReady("horarios")
	}()

	w := get(router, "/sections/horarios/wait?wait_ms=2000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"found":true`)
}
