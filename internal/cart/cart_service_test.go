package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-storefront-api/internal/cart"
	mock "go-storefront-api/internal/mock/cart"
	"go-storefront-api/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func headphones() product.Product {
	return product.Product{
		ID:     "p-1",
		Name:   "Studio Headphones",
		Slug:   "studio-headphones",
		Price:  19.99,
		Stock:  4,
		Images: []product.Image{{URL: "https://cdn/hp.jpg"}},
		Variants: []product.Variant{{
			Name: "Color",
			Options: []product.VariantOption{
				{Value: "Black", PriceModifier: 5, Stock: 2},
				{Value: "Red", PriceModifier: 0, Stock: 0},
			},
		}},
		IsActive: true,
	}
}

func setupService(t *testing.T) (*mock.MockProductLookup, *cart.MemoryStore, cart.Service, string) {
	ctrl := gomock.NewController(t)
	products := mock.NewMockProductLookup(ctrl)
	store := cart.NewMemoryStore()
	return products, store, cart.NewService(store, products, zap.NewNop()), uuid.NewString()
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot_default_variant", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

		view, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})

		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		it := view.Items[0]
		assert.Nil(t, it.Variant)
		assert.Equal(t, 1, it.Quantity)
		assert.Equal(t, 4, it.Stock)
		assert.Equal(t, "https://cdn/hp.jpg", it.ImageRef)
		assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("19.99")))
		assert.Equal(t, "9.99", view.Summary.Shipping.String())
	})

	t.Run("variant_price_and_stock", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil).Times(2)

		_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Variant: "Black", Quantity: 2})
		require.NoError(t, err)
		view, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})
		require.NoError(t, err)

		require.Len(t, view.Items, 2)
		black := view.Items[0]
		assert.Equal(t, "Black", *black.Variant)
		assert.Equal(t, 2, black.Stock)
		assert.True(t, black.UnitPrice.Equal(decimal.RequireFromString("24.99")))
		assert.Equal(t, 3, view.Totals.ItemCount)
	})

	t.Run("error_out_of_stock_variant", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

		_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Variant: "Red"})
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
	})

	t.Run("error_unknown_variant", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

		_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Variant: "Gold"})
		assert.ErrorIs(t, err, cart.ErrVariantNotFound)
	})

	t.Run("error_product_missing", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "nope").Return(product.Product{}, product.ErrProductNotFound)

		_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "nope"})
		assert.ErrorIs(t, err, cart.ErrProductUnavailable)
	})

	t.Run("error_validation", func(t *testing.T) {
		_, _, svc, token := setupService(t)

		_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Quantity: -2})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

		_, err = svc.AddItem(ctx, token, cart.AddItemRequest{})
		assert.ErrorIs(t, err, cart.ErrProductIDRequired)
	})

	t.Run("error_invalid_token", func(t *testing.T) {
		products, _, svc, _ := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

		_, err := svc.AddItem(ctx, "not-a-uuid", cart.AddItemRequest{ProductID: "p-1"})
		assert.ErrorIs(t, err, cart.ErrInvalidCartToken)
	})
}

func TestService_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	products, store, svc, token := setupService(t)
	products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

	_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, token, "p-1", cart.UpdateQuantityRequest{Quantity: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrQuantityExceedsStock)
	assert.Contains(t, err.Error(), "Only 4 items available in stock")

	view, err := svc.UpdateQuantity(ctx, token, "p-1", cart.UpdateQuantityRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)

	// variant mismatch: the default line is not touched
	view, err = svc.RemoveItem(ctx, token, "p-1", cart.VariantOf("Black"))
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.RemoveItem(ctx, token, "p-1", nil)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	require.NoError(t, svc.Clear(ctx, token))
	_, ok, err := store.Get(ctx, cart.StorageKey(token))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	products := mock.NewMockProductLookup(ctrl)
	store := mock.NewMockStore(ctrl)
	svc := cart.NewService(store, products, zap.NewNop())
	token := uuid.NewString()

	products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)
	store.EXPECT().Get(gomock.Any(), cart.StorageKey(token)).Return("", false, nil)
	store.EXPECT().Set(gomock.Any(), cart.StorageKey(token), gomock.Any()).Return(errors.New("redis: connection refused"))

	_, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})
	assert.Error(t, err)
}

func TestService_ConcurrentAddsSameToken(t *testing.T) {
	ctx := context.Background()
	products, _, svc, token := setupService(t)
	products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})
		}()
	}
	wg.Wait()

	view, err := svc.Detail(ctx, token)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 20, view.Items[0].Quantity)
}

func TestService_ClearIfUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("success_clears_ordered_ledger", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil)

		ordered, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Quantity: 2})
		require.NoError(t, err)

		cleared, err := svc.ClearIfUnchanged(ctx, token, cart.Fingerprint(ordered.Items))
		require.NoError(t, err)
		assert.True(t, cleared)

		view, err := svc.Detail(ctx, token)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("keeps_items_added_after_checkout", func(t *testing.T) {
		products, _, svc, token := setupService(t)
		products.EXPECT().GetByID(gomock.Any(), "p-1").Return(headphones(), nil).Times(2)

		ordered, err := svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1"})
		require.NoError(t, err)
		fp := cart.Fingerprint(ordered.Items)

		// checkout cleared the ledger, then the shopper started a new cart
		require.NoError(t, svc.Clear(ctx, token))
		_, err = svc.AddItem(ctx, token, cart.AddItemRequest{ProductID: "p-1", Quantity: 3})
		require.NoError(t, err)

		cleared, err := svc.ClearIfUnchanged(ctx, token, fp)
		require.NoError(t, err)
		assert.False(t, cleared)

		view, err := svc.Detail(ctx, token)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 3, view.Items[0].Quantity)
	})

	t.Run("empty_ledger_is_left_alone", func(t *testing.T) {
		_, _, svc, token := setupService(t)

		cleared, err := svc.ClearIfUnchanged(ctx, token, "")
		require.NoError(t, err)
		assert.False(t, cleared)
	})
}
