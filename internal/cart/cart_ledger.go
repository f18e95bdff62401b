package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Ledger is the ordered set of line items for one cart. It is not safe for
// concurrent use; callers serialize operations on a ledger.
type Ledger struct {
	store Store
	key   string
	items []LineItem
}

// NewLedger loads the ledger persisted under key. A missing key is an empty ledger.
func NewLedger(ctx context.Context, store Store, key string) (*Ledger, error) {
	l := &Ledger{store: store, key: key}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart ledger: %w", err)
	}
	if !ok || raw == "" {
		return l, nil
	}

	if err := json.Unmarshal([]byte(raw), &l.items); err != nil {
		return nil, fmt.Errorf("decode cart ledger: %w", err)
	}
	return l, nil
}

func (l *Ledger) Key() string { return l.key }

func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) IsEmpty() bool { return len(l.items) == 0 }

// Totals is recomputed from the current lines on every call.
func (l *Ledger) Totals() Totals {
	return ComputeTotals(l.items)
}

// AddItem merges into an existing line with the same identity or appends a
// new one. Stock is not checked here.
func (l *Ledger) AddItem(ctx context.Context, item LineItem, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	return l.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		if i := indexOf(items, item.ProductID, item.Variant); i >= 0 {
			items[i].Quantity += quantity
			items[i].Stock = item.Stock
			return items, nil
		}

		item.Quantity = quantity
		return append(items, item), nil
	})
}

func (l *Ledger) UpdateQuantity(ctx context.Context, productID string, variant *string, quantity int) error {
	i := indexOf(l.items, productID, variant)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if quantity < 1 {
		return ErrQuantityBelowMinimum
	}
	if stock := l.items[i].Stock; quantity > stock {
		return ErrQuantityExceedsStock.Withf("Only %d items available in stock", stock)
	}

	return l.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		items[i].Quantity = quantity
		return items, nil
	})
}

// RemoveItem deletes the matching line; a missing line is a no-op.
func (l *Ledger) RemoveItem(ctx context.Context, productID string, variant *string) error {
	i := indexOf(l.items, productID, variant)
	if i < 0 {
		return nil
	}

	return l.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		return append(items[:i], items[i+1:]...), nil
	})
}

// Clear empties the ledger and erases its persisted entry.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("clear cart ledger: %w", err)
	}
	l.items = nil
	return nil
}

// mutate applies fn to a copy and only adopts the result once it is persisted.
func (l *Ledger) mutate(ctx context.Context, fn func([]LineItem) ([]LineItem, error)) error {
	next, err := fn(l.Items())
	if err != nil {
		return err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart ledger: %w", err)
	}
	if err := l.store.Set(ctx, l.key, string(raw)); err != nil {
		return fmt.Errorf("persist cart ledger: %w", err)
	}

	l.items = next
	return nil
}

// Fingerprint identifies the exact contents of a ledger. An empty ledger has
// an empty fingerprint.
func Fingerprint(items []LineItem) string {
	if len(items) == 0 {
		return ""
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func indexOf(items []LineItem, productID string, variant *string) int {
	for i, it := range items {
		if it.Matches(productID, variant) {
			return i
		}
	}
	return -1
}
