package storage

import (
	"context"

	"github.com/amasacademy/portal/cart-service/internal/domain"
)

// Storage persists one serialized cart per user. Writes are full
// overwrites of the blob; carts are small and mutations human-paced.
type Storage interface {
	GetCart(ctx context.Context, uid string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	DeleteCart(ctx context.Context, uid string) error
}
