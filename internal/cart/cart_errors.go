package cart

import (
	"net/http"

	"go-storefront-api/internal/pkg/apperror"
)

var (
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be at least 1",
		http.StatusBadRequest,
	)

	ErrQuantityBelowMinimum = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity cannot be less than 1",
		http.StatusBadRequest,
	)

	ErrQuantityExceedsStock = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity exceeds available stock",
		http.StatusBadRequest,
	)

	ErrCartItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item not found in cart",
		http.StatusNotFound,
	)

	ErrOutOfStock = apperror.New(
		apperror.CodeInvalidState,
		"Product is out of stock",
		http.StatusConflict,
	)

	ErrVariantNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Variant not found for product",
		http.StatusBadRequest,
	)

	ErrProductUnavailable = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrProductIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"productId is required",
		http.StatusBadRequest,
	)

	ErrInvalidCartToken = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid cart token",
		http.StatusBadRequest,
	)
)
