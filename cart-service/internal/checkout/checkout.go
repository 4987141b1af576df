package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/amasacademy/portal/cart-service/internal/domain"
	"github.com/amasacademy/portal/cart-service/internal/logger"
	"github.com/amasacademy/portal/cart-service/internal/storage"
	"github.com/amasacademy/portal/cart-service/internal/webhook"
)

// PaymentMethod values travel on the wire, hence the Spanish names.
type PaymentMethod string

const (
	MethodWallet       PaymentMethod = "yape"
	MethodBankTransfer PaymentMethod = "transferencia"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodWallet || m == MethodBankTransfer
}

var (
	ErrInvalidMethod = errors.New("unknown payment method")
	ErrEmptyOrder    = errors.New("order has no items")
)

// Snapshot is the cart state frozen at the moment the user proceeds to
// payment. Clearing the live cart never touches an in-flight snapshot.
type Snapshot struct {
	Items []domain.LineItem
	Total int
}

// Snap copies the cart items so later reducer calls cannot alias them.
func Snap(cart domain.Cart) Snapshot {
	items := make([]domain.LineItem, len(cart.Items))
	copy(items, cart.Items)
	return Snapshot{Items: items, Total: domain.Total(cart)}
}

type orderPayload struct {
	Method PaymentMethod     `json:"metodo_pago"`
	Items  []domain.LineItem `json:"articulos"`
	Total  int               `json:"total"`
	SentAt time.Time         `json:"fecha"`
}

// Service forwards confirmed orders to the academy's order-intake
// webhook. Merchandise orders and program-fee confirmations are two
// separate flows with separate entry points.
type Service struct {
	stor     storage.Storage
	poster   webhook.Poster
	orderURL string
	now      func() time.Time
}

func NewService(stor storage.Storage, poster webhook.Poster, orderURL string) *Service {
	return &Service{
		stor:     stor,
		poster:   poster,
		orderURL: orderURL,
		now:      time.Now,
	}
}

// SubmitOrder posts the snapshot to the order webhook and clears the
// user's live cart only after the webhook accepted the order. On any
// failure the cart stays untouched and the user may re-confirm.
func (s *Service) SubmitOrder(ctx context.Context, uid string, method PaymentMethod, snap Snapshot) error {
	log := logger.Get()
	if !method.Valid() {
		return ErrInvalidMethod
	}
	if len(snap.Items) == 0 {
		return ErrEmptyOrder
	}

	payload := orderPayload{
		Method: method,
		Items:  snap.Items,
		Total:  snap.Total,
		SentAt: s.now(),
	}
	if err := s.poster.Post(ctx, s.orderURL, payload); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("order webhook failed")
		return err
	}

	if err := s.stor.DeleteCart(ctx, uid); err != nil {
		// The order went through; a stale cart is the lesser problem.
		log.Error().Err(err).Str("uid", uid).Msg("clear cart after order failed")
	}
	return nil
}

// ConfirmProgramFee is the enrollment flow: no merchandise, no webhook
// call, just the static confirmation the payment view shows.
func (s *Service) ConfirmProgramFee(method PaymentMethod) (string, error) {
	if !method.Valid() {
		return "", ErrInvalidMethod
	}
	return "pago confirmado, envia tu comprobante por WhatsApp", nil
}
