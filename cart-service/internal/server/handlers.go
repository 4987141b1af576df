package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/cart-service/internal/checkout"
	"github.com/amasacademy/portal/cart-service/internal/domain"
	"github.com/amasacademy/portal/cart-service/internal/logger"
)

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
	Name      string `json:"name" binding:"required"`
	UnitPrice int    `json:"unit_price" binding:"required,gt=0"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

type itemKeyRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Items []domain.LineItem `json:"items"`
	Total int               `json:"total"`
}

type orderRequest struct {
	Method string `json:"metodo_pago" binding:"required"`
}

func toResponse(cart domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{Items: items, Total: domain.Total(cart)}
}

func (s *Server) GetCart(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	cart, err := s.carts.GetCart(ctx.Request.Context(), uid)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cart")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}
	ctx.JSON(http.StatusOK, toResponse(cart))
}

func (s *Server) AddItem(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	cart, err := s.carts.AddItem(ctx.Request.Context(), uid, domain.LineItem{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
		Quantity:  req.Quantity,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to add item to cart")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
		return
	}
	ctx.JSON(http.StatusOK, toResponse(cart))
}

func (s *Server) UpdateQuantity(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	var req itemKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}

	cart, err := s.carts.SetQuantity(ctx.Request.Context(), uid, req.ProductID, req.Variant, req.Quantity)
	if err != nil {
		log.Error().Err(err).Msg("failed to update quantity")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update quantity"})
		return
	}
	ctx.JSON(http.StatusOK, toResponse(cart))
}

func (s *Server) RemoveItem(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	var req itemKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}

	cart, err := s.carts.RemoveItem(ctx.Request.Context(), uid, req.ProductID, req.Variant)
	if err != nil {
		log.Error().Err(err).Msg("failed to remove item")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}
	ctx.JSON(http.StatusOK, toResponse(cart))
}

func (s *Server) ClearCart(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	if err := s.carts.Clear(ctx.Request.Context(), uid); err != nil {
		log.Error().Err(err).Msg("failed to clear cart")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// CreateOrder snapshots the live cart, forwards it to the order webhook
// and clears the cart once the webhook accepted it.
func (s *Server) CreateOrder(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}

	cart, err := s.carts.GetCart(ctx.Request.Context(), uid)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cart for checkout")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	snap := checkout.Snap(cart)
	err = s.checkout.SubmitOrder(ctx.Request.Context(), uid, checkout.PaymentMethod(req.Method), snap)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidMethod) || errors.Is(err, checkout.ErrEmptyOrder) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Webhook trouble of any kind surfaces as one retryable failure.
		ctx.JSON(http.StatusBadGateway, gin.H{"status": "failed", "message": "no pudimos registrar tu pedido, intenta de nuevo"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "submitted", "total": snap.Total})
}

// ConfirmProgramFee is the enrollment confirmation: no items, no webhook.
func (s *Server) ConfirmProgramFee(ctx *gin.Context) {
	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}

	msg, err := s.checkout.ConfirmProgramFee(checkout.PaymentMethod(req.Method))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "submitted", "message": msg})
}
