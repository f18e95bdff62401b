package checkout

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-storefront-api/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	ErrLoginRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Please login to checkout",
		http.StatusUnauthorized,
	)

	ErrCartEmpty = apperror.New(
		apperror.CodeInvalidState,
		"Your cart is empty",
		http.StatusBadRequest,
	)

	ErrInvalidShippingInfo = apperror.New(
		apperror.CodeInvalidInput,
		"Shipping information is incomplete",
		http.StatusBadRequest,
	)

	ErrOrderNotPlaced = apperror.New(
		apperror.CodeInternalError,
		"Order could not be placed, please try again",
		http.StatusServiceUnavailable,
	)
)

// MapValidationError names the offending fields in the message.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidShippingInfo
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return ErrInvalidShippingInfo.Withf("Invalid shipping fields: %s", strings.Join(fields, ", "))
}
