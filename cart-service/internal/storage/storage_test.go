package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amasacademy/portal/cart-service/internal/domain"
	storerrros "github.com/amasacademy/portal/cart-service/internal/storage/errors"
)

func sampleCart(uid string) domain.Cart {
	cart := domain.Cart{UserID: uid}
	cart = domain.Add(cart, domain.LineItem{
		ProductID: "p1", Variant: "talla-m", Name: "Uniforme", UnitPrice: 100, Quantity: 2,
	})
	cart = domain.Add(cart, domain.LineItem{
		ProductID: "p2", Variant: "rojo", Name: "Guantes", UnitPrice: 45, Quantity: 1,
	})
	return cart
}

func TestMemStorage_RoundTrip(t *testing.T) {
	ms := New()
	ctx := context.Background()
	cart := sampleCart("u1")

	require.NoError(t, ms.SaveCart(ctx, cart))
	got, err := ms.GetCart(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, cart.Items, got.Items)
	assert.Equal(t, domain.Total(cart), domain.Total(got))
}

func TestMemStorage_MissingCartIsEmpty(t *testing.T) {
	ms := New()
	got, err := ms.GetCart(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Equal(t, "nobody", got.UserID)
	assert.Empty(t, got.Items)
}

func TestMemStorage_EmptyUserID(t *testing.T) {
	ms := New()
	_, err := ms.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, storerrros.ErrEmptyUserID)
}

func TestMemStorage_DeleteCart(t *testing.T) {
	ms := New()
	ctx := context.Background()
	require.NoError(t, ms.SaveCart(ctx, sampleCart("u1")))
	require.NoError(t, ms.DeleteCart(ctx, "u1"))

	got, err := ms.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, domain.Total(got))
}

func TestDecodeCart_RoundTrip(t *testing.T) {
	cart := sampleCart("u1")
	data, err := json.Marshal(cart)
	require.NoError(t, err)

	got, err := decodeCart("u1", data)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)
}

func TestDecodeCart_CorruptBlob(t *testing.T) {
	_, err := decodeCart("u1", []byte(`{"items": [{`))
	assert.Error(t, err)
}
