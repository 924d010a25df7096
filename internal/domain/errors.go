package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFilterRange is returned when min_price exceeds max_price.
	// Checked before any store access.
	ErrInvalidFilterRange = errors.New("min_price cannot exceed max_price")

	// ErrInvalidPageParams is returned when page < 1 or page_size is
	// outside [1,100]
	ErrInvalidPageParams = errors.New("invalid pagination parameters")

	// ErrForbidden is returned when a caller tries to mutate a resource
	// it does not own
	ErrForbidden = errors.New("operation not permitted")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
