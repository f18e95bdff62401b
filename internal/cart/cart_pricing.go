package cart

import "github.com/shopspring/decimal"

// Checkout policy constants. These are fixed values, not configuration.
var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.RequireFromString("9.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

type Totals struct {
	Subtotal  decimal.Decimal
	ItemCount int
}

type CheckoutSummary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func ComputeTotals(items []LineItem) Totals {
	t := Totals{Subtotal: decimal.Zero}
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.LineTotal())
		t.ItemCount += it.Quantity
	}
	return t
}

// ComputeCheckoutSummary: shipping is free only strictly above the threshold.
func ComputeCheckoutSummary(subtotal decimal.Decimal) CheckoutSummary {
	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return CheckoutSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
