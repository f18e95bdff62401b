package product

import (
	"net/http"

	"go-storefront-api/internal/pkg/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrSearchTermRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Search query is required",
		http.StatusBadRequest,
	)

	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Category id is required",
		http.StatusBadRequest,
	)
)
