package cart

import (
	"go-storefront-api/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

// LineItem is one cart row. Display fields are a snapshot taken when the
// item was added and are never refreshed from the catalog.
type LineItem struct {
	ProductID string          `json:"productId"`
	Variant   *string         `json:"variant"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageRef  string          `json:"imageRef"`
	Slug      string          `json:"slug"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// Matches reports whether the item has identity (productID, variant).
// A nil variant is the default variant and only matches another nil.
func (i LineItem) Matches(productID string, variant *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.Variant == nil || variant == nil {
		return i.Variant == nil && variant == nil
	}
	return *i.Variant == *variant
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VariantOf maps the request's empty variant to the default (nil) variant.
func VariantOf(s string) *string {
	if s == "" {
		return nil
	}
	return helper.StringPtr(s)
}
