package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrUserInactive       = &AppError{http.StatusForbidden, "USER_INACTIVE", "User account is suspended"}
	ErrForbidden          = &AppError{http.StatusForbidden, "FORBIDDEN", "Insufficient permissions"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrCustomerNotFound      = &AppError{http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"}
	ErrCustomerHasHistory    = &AppError{http.StatusConflict, "CUSTOMER_HAS_HISTORY", "Customer has sales, debts or payments and cannot be deleted"}
	ErrInvalidCustomer       = &AppError{http.StatusBadRequest, "INVALID_CUSTOMER", "Invalid customer"}
	ErrInvalidAmount         = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive with at most two decimal places"}
	ErrInvalidPaymentMethod  = &AppError{http.StatusBadRequest, "INVALID_PAYMENT_METHOD", "Payment method must be cash, card, bank_transfer, mobile_money or other"}
	ErrInvalidPeriod         = &AppError{http.StatusBadRequest, "INVALID_PERIOD", "Statement period start is after its end"}
	ErrUnsupportedFormat     = &AppError{http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Statement format must be csv, html or xlsx"}
	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
	ErrIdempotencyInProgress = &AppError{http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "A request with this Idempotency-Key is still being processed"}
)
