package domain

import "errors"

var (
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found in feed cache")
	// ErrConfirmationNotFound ...
	ErrConfirmationNotFound = errors.New("pending confirmation not found")
	// ErrInvalidStatus ...
	ErrInvalidStatus = errors.New("order status is not a known value")
)
