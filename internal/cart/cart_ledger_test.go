package cart_test

import (
	"context"
	"errors"
	"testing"

	"go-storefront-api/internal/cart"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== HELPERS ====================

const testKey = "cart"

func newLedger(t *testing.T, store cart.Store) *cart.Ledger {
	t.Helper()

	l, err := cart.NewLedger(context.Background(), store, testKey)
	require.NoError(t, err)
	return l
}

func item(productID string, variant *string, price string, stock int) cart.LineItem {
	return cart.LineItem{
		ProductID: productID,
		Variant:   variant,
		Name:      "Product " + productID,
		UnitPrice: decimal.RequireFromString(price),
		Slug:      "product-" + productID,
		Stock:     stock,
	}
}

func randomItem() cart.LineItem {
	return cart.LineItem{
		ProductID: gofakeit.UUID(),
		Name:      gofakeit.ProductName(),
		UnitPrice: decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Stock:     gofakeit.IntRange(1, 50),
	}
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func assertSameItems(t *testing.T, want, got []cart.LineItem) {
	t.Helper()

	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

type failingStore struct {
	*cart.MemoryStore
	failSet    bool
	failDelete bool
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("store unavailable")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("store unavailable")
	}
	return f.MemoryStore.Delete(ctx, key)
}

// ==================== ADD ====================

func TestLedger_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("same_identity_accumulates_quantity", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())
		it := randomItem()

		want := 0
		for range gofakeit.IntRange(2, 10) {
			n := gofakeit.IntRange(1, 5)
			want += n
			require.NoError(t, l.AddItem(ctx, it, n))
		}

		items := l.Items()
		require.Len(t, items, 1)
		assert.Equal(t, want, items[0].Quantity)
	})

	t.Run("variant_participates_in_identity", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())

		require.NoError(t, l.AddItem(ctx, item("p1", nil, "10", 5), 1))
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("Black"), "10", 5), 1))
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("White"), "10", 5), 2))
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("Black"), "10", 5), 3))

		items := l.Items()
		require.Len(t, items, 3)
		assert.Nil(t, items[0].Variant)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, "Black", *items[1].Variant)
		assert.Equal(t, 4, items[1].Quantity)
		assert.Equal(t, "White", *items[2].Variant)
		assert.Equal(t, 2, items[2].Quantity)
	})

	t.Run("insertion_order_preserved", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())

		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, l.AddItem(ctx, item(id, nil, "1", 9), 1))
		}
		require.NoError(t, l.AddItem(ctx, item("a", nil, "1", 9), 1))

		var ids []string
		for _, it := range l.Items() {
			ids = append(ids, it.ProductID)
		}
		assert.Equal(t, []string{"c", "a", "b"}, ids)
	})

	t.Run("no_stock_check_at_add_time", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())

		require.NoError(t, l.AddItem(ctx, item("p1", nil, "5", 2), 5))
		assert.Equal(t, 5, l.Items()[0].Quantity)
	})

	t.Run("error_quantity_below_one", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())

		err := l.AddItem(ctx, item("p1", nil, "5", 2), 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
		assert.True(t, l.IsEmpty())
	})

	t.Run("error_persist_failure_leaves_ledger_unchanged", func(t *testing.T) {
		store := &failingStore{MemoryStore: cart.NewMemoryStore()}
		l := newLedger(t, store)
		require.NoError(t, l.AddItem(ctx, item("p1", nil, "5", 9), 1))

		store.failSet = true
		err := l.AddItem(ctx, item("p1", nil, "5", 9), 2)
		assert.Error(t, err)
		assert.Equal(t, 1, l.Items()[0].Quantity)

		err = l.AddItem(ctx, item("p2", nil, "5", 9), 1)
		assert.Error(t, err)
		assert.Len(t, l.Items(), 1)
	})
}

// ==================== UPDATE ====================

func TestLedger_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *cart.Ledger {
		l := newLedger(t, cart.NewMemoryStore())
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("256GB"), "100", 5), 2))
		return l
	}

	t.Run("success_within_stock", func(t *testing.T) {
		l := setup(t)

		for _, n := range []int{1, 3, 5} {
			require.NoError(t, l.UpdateQuantity(ctx, "p1", cart.VariantOf("256GB"), n))
			assert.Equal(t, n, l.Items()[0].Quantity)
		}
	})

	t.Run("rejected_below_minimum", func(t *testing.T) {
		l := setup(t)

		for _, n := range []int{0, -1, -50} {
			err := l.UpdateQuantity(ctx, "p1", cart.VariantOf("256GB"), n)
			assert.ErrorIs(t, err, cart.ErrQuantityBelowMinimum)
			assert.Equal(t, 2, l.Items()[0].Quantity)
		}
	})

	t.Run("rejected_above_stock_with_reason", func(t *testing.T) {
		l := setup(t)

		err := l.UpdateQuantity(ctx, "p1", cart.VariantOf("256GB"), 6)
		assert.ErrorIs(t, err, cart.ErrQuantityExceedsStock)
		assert.Contains(t, err.Error(), "Only 5 items available in stock")
		assert.Equal(t, 2, l.Items()[0].Quantity)
	})

	t.Run("rejected_unknown_identity", func(t *testing.T) {
		l := setup(t)

		err := l.UpdateQuantity(ctx, "p1", nil, 1)
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
		assert.Equal(t, 2, l.Items()[0].Quantity)
	})

	t.Run("rejection_does_not_touch_store", func(t *testing.T) {
		store := cart.NewMemoryStore()
		l := newLedger(t, store)
		require.NoError(t, l.AddItem(ctx, item("p1", nil, "1", 3), 1))
		before, _, _ := store.Get(ctx, testKey)

		assert.Error(t, l.UpdateQuantity(ctx, "p1", nil, 4))

		after, _, _ := store.Get(ctx, testKey)
		assert.Equal(t, before, after)
	})
}

// ==================== REMOVE / CLEAR ====================

func TestLedger_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_only_matching_identity", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())
		require.NoError(t, l.AddItem(ctx, item("p1", nil, "1", 3), 1))
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("Red"), "1", 3), 1))

		require.NoError(t, l.RemoveItem(ctx, "p1", nil))

		items := l.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Red", *items[0].Variant)
	})

	t.Run("absent_is_noop", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())
		require.NoError(t, l.AddItem(ctx, item("p1", nil, "1", 3), 1))

		require.NoError(t, l.RemoveItem(ctx, "nope", nil))
		assert.Len(t, l.Items(), 1)
	})
}

func TestLedger_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("clear_then_reload_is_empty", func(t *testing.T) {
		store := cart.NewMemoryStore()
		l := newLedger(t, store)
		require.NoError(t, l.AddItem(ctx, randomItem(), 2))

		require.NoError(t, l.Clear(ctx))
		assert.True(t, l.IsEmpty())

		_, ok, _ := store.Get(ctx, testKey)
		assert.False(t, ok)

		reloaded, err := cart.NewLedger(ctx, store, testKey)
		require.NoError(t, err)
		assert.True(t, reloaded.IsEmpty())
		assert.True(t, reloaded.Totals().Subtotal.IsZero())
	})

	t.Run("error_store_failure_keeps_items", func(t *testing.T) {
		store := &failingStore{MemoryStore: cart.NewMemoryStore()}
		l := newLedger(t, store)
		require.NoError(t, l.AddItem(ctx, randomItem(), 1))

		store.failDelete = true
		assert.Error(t, l.Clear(ctx))
		assert.Len(t, l.Items(), 1)
	})
}

// ==================== PERSISTENCE ====================

func TestLedger_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("reload_restores_items_in_order", func(t *testing.T) {
		store := cart.NewMemoryStore()
		l := newLedger(t, store)
		require.NoError(t, l.AddItem(ctx, item("p2", nil, "19.99", 4), 2))
		require.NoError(t, l.AddItem(ctx, item("p1", cart.VariantOf("Blue"), "5.50", 4), 1))

		reloaded := newLedger(t, store)
		assertSameItems(t, l.Items(), reloaded.Items())
	})

	t.Run("missing_key_is_empty", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())
		assert.True(t, l.IsEmpty())
	})

	t.Run("error_corrupt_payload", func(t *testing.T) {
		store := cart.NewMemoryStore()
		require.NoError(t, store.Set(ctx, testKey, "{not json"))

		_, err := cart.NewLedger(ctx, store, testKey)
		assert.Error(t, err)
	})
}

// ==================== TOTALS ====================

func TestLedger_Totals(t *testing.T) {
	ctx := context.Background()

	t.Run("subtotal_is_exact_sum_after_mixed_operations", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())

		var added []cart.LineItem
		for range 8 {
			it := randomItem()
			it.Stock = 100
			require.NoError(t, l.AddItem(ctx, it, gofakeit.IntRange(1, 4)))
			added = append(added, it)
		}
		require.NoError(t, l.RemoveItem(ctx, added[2].ProductID, nil))
		require.NoError(t, l.UpdateQuantity(ctx, added[5].ProductID, nil, 7))

		want := decimal.Zero
		count := 0
		for _, it := range l.Items() {
			want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
			count += it.Quantity
		}

		totals := l.Totals()
		assert.True(t, want.Equal(totals.Subtotal), "want %s got %s", want, totals.Subtotal)
		assert.Equal(t, count, totals.ItemCount)
	})

	t.Run("decimal_prices_do_not_drift", func(t *testing.T) {
		l := newLedger(t, cart.NewMemoryStore())
		require.NoError(t, l.AddItem(ctx, item("a", nil, "0.10", 10), 3))
		require.NoError(t, l.AddItem(ctx, item("b", nil, "0.20", 10), 1))

		assert.Equal(t, "0.5", l.Totals().Subtotal.String())
		assert.Equal(t, 4, l.Totals().ItemCount)
	})
}
