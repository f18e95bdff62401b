package checkout

import (
	"time"

	"go-storefront-api/internal/cart"
)

type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=6,max=20"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

type CheckoutRequest struct {
	Shipping ShippingInfo `json:"shipping"`
}

type OrderResponse struct {
	OrderNumber string                  `json:"orderNumber"`
	Items       []cart.CartItemResponse `json:"items"`
	Summary     cart.SummaryResponse    `json:"summary"`
	PlacedAt    time.Time               `json:"placedAt"`
}

const (
	EventOrderPlaced      = "ORDER_PLACED"
	EventCartClearPending = "CART_CLEAR_PENDING"
)

// OrderPlacedPayload is the message body published on the order topic.
type OrderPlacedPayload struct {
	OrderNumber string               `json:"order_number"`
	UserID      string               `json:"user_id"`
	CartToken   string               `json:"cart_token"`
	Items       []cart.LineItem      `json:"items"`
	Shipping    ShippingInfo         `json:"shipping"`
	Summary     cart.SummaryResponse `json:"summary"`
	PlacedAt    time.Time            `json:"placed_at"`
}

// CartClearPayload asks the consumer to clear a ledger that checkout could not
// clear, but only while it still holds exactly the ordered lines.
type CartClearPayload struct {
	OrderNumber string `json:"order_number"`
	CartToken   string `json:"cart_token"`
	Fingerprint string `json:"fingerprint"`
}
