package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amasacademy/portal/cart-service/internal/domain"
	"github.com/amasacademy/portal/cart-service/internal/logger"
	storerrros "github.com/amasacademy/portal/cart-service/internal/storage/errors"
)

// keyPrefix matches the storage key the web client used for its cart blob.
const keyPrefix = "amasCart"

type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(ctx context.Context, addr, password string, ttl time.Duration) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

func cartKey(uid string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, uid)
}

// GetCart loads and decodes the user's cart blob. A corrupt blob is the
// one recovered failure here: it logs and returns an empty cart instead
// of surfacing an error.
func (rs *RedisStorage) GetCart(ctx context.Context, uid string) (domain.Cart, error) {
	log := logger.Get()
	if uid == "" {
		return domain.Cart{}, storerrros.ErrEmptyUserID
	}
	data, err := rs.client.Get(ctx, cartKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{UserID: uid}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := decodeCart(uid, data)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("corrupt cart blob, recovering to empty cart")
		return domain.Cart{UserID: uid}, nil
	}
	return cart, nil
}

func (rs *RedisStorage) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.UserID == "" {
		return storerrros.ErrEmptyUserID
	}
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, cartKey(cart.UserID), data, rs.ttl).Err()
}

func (rs *RedisStorage) DeleteCart(ctx context.Context, uid string) error {
	if uid == "" {
		return storerrros.ErrEmptyUserID
	}
	return rs.client.Del(ctx, cartKey(uid)).Err()
}

func decodeCart(uid string, data []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, err
	}
	cart.UserID = uid
	return cart, nil
}
