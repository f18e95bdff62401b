package cart

import "github.com/shopspring/decimal"

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Variant   string `json:"variant"`
	// 0 means 1
	Quantity int `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type UpdateQuantityRequest struct {
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
}

// View is the state returned after every cart operation.
type View struct {
	Items   []LineItem
	Totals  Totals
	Summary CheckoutSummary
}

func newView(items []LineItem) View {
	totals := ComputeTotals(items)
	return View{
		Items:   items,
		Totals:  totals,
		Summary: ComputeCheckoutSummary(totals.Subtotal),
	}
}

type CartItemResponse struct {
	ProductID string          `json:"productId"`
	Variant   *string         `json:"variant"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	ImageRef  string          `json:"imageRef"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type SummaryResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Summary   SummaryResponse    `json:"summary"`
}

func ToSummaryResponse(s CheckoutSummary) SummaryResponse {
	return SummaryResponse{
		Subtotal: s.Subtotal.Round(2),
		Shipping: s.Shipping.Round(2),
		Tax:      s.Tax.Round(2),
		Total:    s.Total.Round(2),
	}
}

func ToCartResponse(v View) CartResponse {
	items := make([]CartItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, CartItemResponse{
			ProductID: it.ProductID,
			Variant:   it.Variant,
			Name:      it.Name,
			Slug:      it.Slug,
			ImageRef:  it.ImageRef,
			UnitPrice: it.UnitPrice,
			Stock:     it.Stock,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}

	return CartResponse{
		Items:     items,
		ItemCount: v.Totals.ItemCount,
		Subtotal:  v.Totals.Subtotal,
		Summary:   ToSummaryResponse(v.Summary),
	}
}
