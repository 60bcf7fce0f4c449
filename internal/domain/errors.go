package domain

import "errors"

var (
	// ErrItemNotFound is returned when removing a product that is not in the cart
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrMalformedPrice is returned when a product price cannot be parsed
	ErrMalformedPrice = errors.New("malformed price")

	// ErrProductNotFound is returned when a product name is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidCatalog is returned when catalog data fails validation
	ErrInvalidCatalog = errors.New("invalid catalog data")
)
