package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/amasacademy/portal/cart-service/internal/domain"
	"github.com/amasacademy/portal/cart-service/internal/logger"
	"github.com/amasacademy/portal/cart-service/internal/storage"
)

// CartService funnels every cart mutation through the pure reducer
// functions in domain, then writes the whole cart back.
type CartService struct {
	stor storage.Storage
	sfg  singleflight.Group // collapses concurrent reads for one user
}

func New(stor storage.Storage) *CartService {
	return &CartService{stor: stor}
}

func (s *CartService) GetCart(ctx context.Context, uid string) (domain.Cart, error) {
	v, err, _ := s.sfg.Do(uid, func() (interface{}, error) {
		return s.stor.GetCart(ctx, uid)
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return v.(domain.Cart), nil
}

func (s *CartService) AddItem(ctx context.Context, uid string, item domain.LineItem) (domain.Cart, error) {
	return s.apply(ctx, uid, func(cart domain.Cart) domain.Cart {
		return domain.Add(cart, item)
	})
}

func (s *CartService) SetQuantity(ctx context.Context, uid, productID, variant string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.apply(ctx, uid, func(cart domain.Cart) domain.Cart {
		return domain.SetQuantity(cart, productID, variant, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, uid, productID, variant string) (domain.Cart, error) {
	return s.apply(ctx, uid, func(cart domain.Cart) domain.Cart {
		return domain.Remove(cart, productID, variant)
	})
}

func (s *CartService) Clear(ctx context.Context, uid string) error {
	return s.stor.DeleteCart(ctx, uid)
}

func (s *CartService) apply(ctx context.Context, uid string, reduce func(domain.Cart) domain.Cart) (domain.Cart, error) {
	log := logger.Get()
	cart, err := s.stor.GetCart(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("load cart failed")
		return domain.Cart{}, err
	}
	cart = reduce(cart)
	if err := s.stor.SaveCart(ctx, cart); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("save cart failed")
		return domain.Cart{}, err
	}
	return cart, nil
}
