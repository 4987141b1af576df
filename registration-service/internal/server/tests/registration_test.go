package tests

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/amasacademy/portal/registration-service/internal/config"
	"github.com/amasacademy/portal/registration-service/internal/server"
	"github.com/amasacademy/portal/registration-service/internal/webhook"
)

type env struct {
	router   *gin.Engine
	hookHits atomic.Int64
	gotPath  atomic.Value
	gotBody  atomic.Value
	hookFail atomic.Bool
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{}
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hookHits.Add(1)
		e.gotPath.Store(r.URL.Path)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		e.gotBody.Store(body)
		if e.hookFail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(hook.Close)

	cfg := config.Config{Addr: "localhost:0", FormWebhookBase: hook.URL}
	srv := server.New(cfg, webhook.NewClient(2*time.Second))

	router := gin.New()
	router.GET("/programs", srv.ListPrograms)
	router.POST("/registrations/:program", srv.SubmitRegistration)
	e.router = router
	return e
}

func (e *env) submit(program string, payload map[string]any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/registrations/"+program, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func validPayload() map[string]any {
	return map[string]any{
		"nombre_alumno":    "Luis Paredes",
		"nombre_apoderado": "Carmen Paredes",
		"fecha_nacimiento": "2014-03-09",
		"correo":           "carmen@example.com",
		"telefono":         "+51 999 111 222",
	}
}

func TestListPrograms(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/programs", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Programs []struct {
			Slug string `json:"slug"`
			Fee  int    `json:"fee"`
		} `json:"programs"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Programs, 6)
}

func TestSubmitRegistration(t *testing.T) {
	e := newEnv(t)

	payload := validPayload()
	payload["talla_uniforme"] = "M"
	payload["cantidad_uniformes"] = 1
	w := e.submit("matricula", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"submitted"`)
	assert.Equal(t, int64(1), e.hookHits.Load())
	assert.Equal(t, "/webhook/matricula", e.gotPath.Load())

	body := e.gotBody.Load().(map[string]any)
	assert.Equal(t, "matricula", body["programa"])
	assert.Equal(t, "Luis Paredes", body["nombre_alumno"])
	assert.Equal(t, float64(150+180), body["total"])
	assert.NotEmpty(t, body["enviado_en"])
}

func TestUnknownProgram(t *testing.T) {
	e := newEnv(t)

	w := e.submit("yoga", validPayload())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(0), e.hookHits.Load())
}

func TestValidationShortCircuitsBeforeWebhook(t *testing.T) {
	e := newEnv(t)

	w := e.submit("matricula", map[string]any{"correo": "no-es-correo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Status string            `json:"status"`
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid", resp.Status)
	assert.Contains(t, resp.Fields, "nombre_alumno")
	assert.Contains(t, resp.Fields, "correo")
	assert.Equal(t, int64(0), e.hookHits.Load())
}

func TestAttachmentRejectedBeforeWebhook(t *testing.T) {
	e := newEnv(t)

	payload := validPayload()
	payload["adjunto"] = "data:application/zip;base64," + base64.StdEncoding.EncodeToString([]byte("zip"))
	w := e.submit("examen", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "adjunto")
	assert.Equal(t, int64(0), e.hookHits.Load())

	payload["adjunto"] = "data:image/png;base64," + strings.Repeat("A", base64.StdEncoding.EncodedLen(4<<20))
	w = e.submit("examen", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), e.hookHits.Load())
}

func TestAllowedAttachmentForwarded(t *testing.T) {
	e := newEnv(t)

	adjunto := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("comprobante"))
	payload := validPayload()
	payload["adjunto"] = adjunto
	w := e.submit("examen", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	body := e.gotBody.Load().(map[string]any)
	assert.Equal(t, adjunto, body["adjunto"])
	assert.Equal(t, "/webhook/examen-grado", e.gotPath.Load())
}

func TestWebhookFailureReported(t *testing.T) {
	e := newEnv(t)
	e.hookFail.Store(true)

	w := e.submit("torneo", map[string]any{
		"nombre_alumno": "Luis", "correo": "l@p.com", "telefono": "999",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"failed"`)
}
