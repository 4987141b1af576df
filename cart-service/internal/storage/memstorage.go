package storage

import (
	"context"
	"sync"
	"time"

	"github.com/amasacademy/portal/cart-service/internal/domain"
	storerrros "github.com/amasacademy/portal/cart-service/internal/storage/errors"
)

// MemStorage backs tests and local runs without a redis instance.
type MemStorage struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func New() *MemStorage {
	return &MemStorage{
		carts: make(map[string]domain.Cart),
	}
}

func (ms *MemStorage) GetCart(_ context.Context, uid string) (domain.Cart, error) {
	if uid == "" {
		return domain.Cart{}, storerrros.ErrEmptyUserID
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	cart, ok := ms.carts[uid]
	if !ok {
		return domain.Cart{UserID: uid}, nil
	}
	return cart, nil
}

func (ms *MemStorage) SaveCart(_ context.Context, cart domain.Cart) error {
	if cart.UserID == "" {
		return storerrros.ErrEmptyUserID
	}
	cart.UpdatedAt = time.Now()
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.carts[cart.UserID] = cart
	return nil
}

func (ms *MemStorage) DeleteCart(_ context.Context, uid string) error {
	if uid == "" {
		return storerrros.ErrEmptyUserID
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.carts, uid)
	return nil
}
