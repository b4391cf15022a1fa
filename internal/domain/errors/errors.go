package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidSession        = errors.New("invalid session")
	ErrRequiredField         = errors.New("required field missing")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidCurrency       = errors.New("invalid currency")
	ErrInvalidPurchaser      = errors.New("invalid purchaser")
	ErrEmptyPaymentReference = errors.New("payment reference is required")
	ErrSubmissionInFlight    = errors.New("submission already in progress")
	ErrActionNotAllowed      = errors.New("action not allowed")
)
