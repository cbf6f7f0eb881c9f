package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared by the storefront and gateway.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
	ErrPaymentFailed = errors.New("payment failed")
	ErrStoreFailure  = errors.New("store failure")
)

// AppError is an error carrying a machine code, a user-facing message and the
// HTTP status it should be rendered with.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AlreadySaved creates a 409 error for a duplicate save-for-later.
func AlreadySaved(message string) *AppError {
	return &AppError{
		Code:    "ALREADY_SAVED",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Internal creates a 500 error. The cause is kept for logging only.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     fmt.Errorf("%w: %w", ErrInternal, err),
	}
}

// PaymentFailed creates a 500 error for a payment order the provider did not
// open. message is shown to the shopper; cause may be nil.
func PaymentFailed(message string, cause error) *AppError {
	err := ErrPaymentFailed
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrPaymentFailed, cause)
	}
	return &AppError{
		Code:    "PAYMENT_FAILED",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// StoreFailure creates a 502 error for a rejected write to a hosted store.
// message is shown to the user; cause may be nil.
func StoreFailure(message string, cause error) *AppError {
	err := ErrStoreFailure
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrStoreFailure, cause)
	}
	return &AppError{
		Code:    "STORE_FAILURE",
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrStoreFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
