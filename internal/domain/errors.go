package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrOfferUnavailable   = errors.New("offer_unavailable")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInsufficientFunds  = errors.New("insufficient_funds")
	ErrInvalidListing     = errors.New("invalid_listing")
	ErrInvalidBalanceEdit = errors.New("invalid_balance_edit")
	ErrProductNotFound    = errors.New("product_not_found")
	ErrOfferNotFound      = errors.New("offer_not_found")
	ErrNotAuthorized      = errors.New("not_authorized")
	ErrNotOwner           = errors.New("not_owner")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
