package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEntryNotFound is returned when a product is not in the taxonomy
	ErrEntryNotFound = errors.New("product not found in taxonomy")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrTaxonomyUnavailable is returned when the taxonomy file cannot be loaded
	ErrTaxonomyUnavailable = errors.New("taxonomy unavailable")

	// ErrUnsupportedFormat is returned for taxonomy files that are neither CSV nor YAML
	ErrUnsupportedFormat = errors.New("unsupported taxonomy format")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidVariation is returned when a spelling variant cannot be matched on word boundaries
	ErrInvalidVariation = errors.New("invalid spelling variation")

	// ErrInvalidDistinction is returned for malformed flavor distinction rules
	ErrInvalidDistinction = errors.New("invalid flavor distinction")
)
