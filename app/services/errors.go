// Package services holds the business logic between controllers and
// repositories. Services return sentinel errors; controllers map them
// onto HTTP status codes.
package services

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateSlug      = errors.New("slug already in use")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product is not available")
	ErrVariantRequired    = errors.New("variant selection required")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrStockSumMismatch   = errors.New("product stock must equal the sum of variant stocks")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrBadSignature       = errors.New("invalid webhook signature")
)
