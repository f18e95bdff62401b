package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidState    = "INVALID_STATE"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError adalah error domain yang sudah membawa status HTTP.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int

	parent *AppError
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithMessage returns a copy with a more specific message.
// errors.Is(copy, e) still holds.
func (e *AppError) WithMessage(message string) *AppError {
	root := e
	if e.parent != nil {
		root = e.parent
	}
	return &AppError{
		Code:       e.Code,
		Message:    message,
		HTTPStatus: e.HTTPStatus,
		parent:     root,
	}
}

func (e *AppError) Withf(format string, args ...any) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || (e.parent != nil && e.parent == t)
}

// HTTPError is what handlers put in the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// ToHTTP finds the AppError anywhere in err's chain. Anything else is an
// internal failure whose cause stays out of the response.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{Status: appErr.HTTPStatus, Code: appErr.Code, Message: appErr.Message}
	}
	return HTTPError{Status: http.StatusInternalServerError, Code: CodeInternalError, Message: "operation failed"}
}
