package domain

import "errors"

var (
	// ErrNotFound is returned when a catalog entry or journal record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when an argument has the wrong shape (nil provider, missing id)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation is returned when input fails field validation
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists is returned on a duplicate favorite or collection entry
	ErrAlreadyExists = errors.New("already exists")

	// ErrCompareFull is returned when the compare list already holds the maximum
	ErrCompareFull = errors.New("compare list is full")

	// ErrUnauthorized is returned when a request has no valid bearer token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog provider cannot load
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
