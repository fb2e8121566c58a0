package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrCustomerHasHistory      = errors.New("customer has ledger history")
	ErrInvalidAmount           = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidCustomer         = errors.New("invalid customer")
	ErrInvalidPeriod           = errors.New("period start is after period end")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrUserInactive            = errors.New("user inactive")
	ErrForbidden               = errors.New("forbidden")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)
