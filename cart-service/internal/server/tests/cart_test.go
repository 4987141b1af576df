package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amasacademy/portal/cart-service/internal/checkout"
	"github.com/amasacademy/portal/cart-service/internal/config"
	"github.com/amasacademy/portal/cart-service/internal/domain"
	"github.com/amasacademy/portal/cart-service/internal/server"
	"github.com/amasacademy/portal/cart-service/internal/service"
	"github.com/amasacademy/portal/cart-service/internal/storage"
	"github.com/amasacademy/portal/cart-service/internal/webhook"
)

type env struct {
	router  *gin.Engine
	stor    *storage.MemStorage
	hookHit *atomic.Int64
	gotBody *atomic.Value
}

func setup(t *testing.T, hookStatus int) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		stor:    storage.New(),
		hookHit: &atomic.Int64{},
		gotBody: &atomic.Value{},
	}

	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hookHit.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		e.gotBody.Store(body)
		w.WriteHeader(hookStatus)
	}))
	t.Cleanup(hook.Close)

	carts := service.New(e.stor)
	co := checkout.NewService(e.stor, webhook.NewClient(2*time.Second), hook.URL)
	s := server.New(config.Config{Addr: ":8082"}, carts, co)

	router := gin.New()
	router.Use(func(ctx *gin.Context) { ctx.Set("uid", "u1") })
	router.GET("/cart", s.GetCart)
	router.POST("/cart/items", s.AddItem)
	router.PUT("/cart/items", s.UpdateQuantity)
	router.DELETE("/cart/items", s.RemoveItem)
	router.DELETE("/cart", s.ClearCart)
	router.POST("/checkout/orders", s.CreateOrder)
	router.POST("/checkout/confirmations", s.ConfirmProgramFee)
	e.router = router
	return e
}

func (e *env) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAddItem_MergesAndTotals(t *testing.T) {
	e := setup(t, http.StatusOK)

	w := e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []domain.LineItem `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 200, resp.Total)
}

func TestAddItem_BadRequest(t *testing.T) {
	e := setup(t, http.StatusOK)

	w := e.do(http.MethodPost, "/cart/items", `{"variant":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), e.hookHit.Load())
}

func TestCheckout_SubmitsAndClearsCart(t *testing.T) {
	e := setup(t, http.StatusOK)

	w := e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPost, "/checkout/orders", `{"metodo_pago":"transferencia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), e.hookHit.Load())

	body := e.gotBody.Load().(map[string]any)
	assert.Equal(t, "transferencia", body["metodo_pago"])
	assert.EqualValues(t, 200, body["total"])
	items := body["articulos"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].(map[string]any)["quantity"])

	// cart cleared only after the webhook accepted the order
	w = e.do(http.MethodGet, "/cart", "")
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}

func TestCheckout_WebhookFailureKeepsCart(t *testing.T) {
	e := setup(t, http.StatusInternalServerError)

	e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100,"quantity":2}`)

	w := e.do(http.MethodPost, "/checkout/orders", `{"metodo_pago":"yape"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = e.do(http.MethodGet, "/cart", "")
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Total)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	e := setup(t, http.StatusOK)

	w := e.do(http.MethodPost, "/checkout/orders", `{"metodo_pago":"yape"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), e.hookHit.Load())
}

func TestCheckout_UnknownMethodRejected(t *testing.T) {
	e := setup(t, http.StatusOK)

	e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100}`)
	w := e.do(http.MethodPost, "/checkout/orders", `{"metodo_pago":"efectivo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), e.hookHit.Load())
}

func TestConfirmProgramFee_NoWebhookCall(t *testing.T) {
	e := setup(t, http.StatusOK)

	w := e.do(http.MethodPost, "/checkout/confirmations", `{"metodo_pago":"yape"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), e.hookHit.Load())
	assert.Contains(t, w.Body.String(), "comprobante")
}

func TestUpdateAndRemove(t *testing.T) {
	e := setup(t, http.StatusOK)

	e.do(http.MethodPost, "/cart/items", `{"product_id":"p1","variant":"red","name":"Guantes","unit_price":100}`)
	w := e.do(http.MethodPut, "/cart/items", `{"product_id":"p1","variant":"red","quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 500, resp.Total)

	w = e.do(http.MethodDelete, "/cart/items", `{"product_id":"p1","variant":"red"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}
