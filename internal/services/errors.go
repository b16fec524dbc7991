package services

import "errors"

// Checkout error taxonomy. Handlers branch on these with errors.Is to pick a
// status code and a user-facing message; none of them is retried
// automatically.
var (
	// ErrEmptyCart means checkout was invoked with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity means a cart mutation carried a quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrCartLineNotFound means the referenced cart line does not exist.
	ErrCartLineNotFound = errors.New("cart line not found")
	// ErrTermsNotAccepted means the shopper did not accept the terms.
	ErrTermsNotAccepted = errors.New("terms must be accepted before checkout")
	// ErrAddressIncomplete means a delivery checkout has no fully populated
	// address on file.
	ErrAddressIncomplete = errors.New("delivery address is missing or incomplete")
	// ErrInsufficientStock means an atomic stock decrement affected zero
	// rows; the whole order is aborted, never partially fulfilled.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPaymentFailed means the payment adapter could not produce an
	// outcome; finalization was never reached.
	ErrPaymentFailed = errors.New("payment failed")
)
