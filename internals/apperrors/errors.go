package apperrors

import "errors"

// Business-rule failures returned by the service layer. Controllers map
// these to HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyIssued     = errors.New("book already issued to this customer")
	ErrNoCopyAvailable   = errors.New("no copy available to issue")
	ErrInvalidTransition = errors.New("invalid copy status transition")
	ErrValidation        = errors.New("invalid input")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("permission denied")
)
