package domain

import "errors"

var (
	// ErrEmptyQuery is returned when the product name is empty after trimming
	ErrEmptyQuery = errors.New("product name is empty")

	// ErrInvalidMode is returned when the requested provider mode is unknown
	ErrInvalidMode = errors.New("unknown provider mode")

	// ErrNoResults is returned when no usable search results survive merging and filtering
	ErrNoResults = errors.New("no search results found")

	// ErrNoPricesFound is returned when results exist but none yield a price
	ErrNoPricesFound = errors.New("no prices found in search results")

	// ErrAllProvidersFailed is returned when every search provider failed
	ErrAllProvidersFailed = errors.New("all search providers failed")

	// ErrProviderFailure is returned when a single provider request fails
	ErrProviderFailure = errors.New("search provider request failed")

	// ErrProductNameNotFound is returned when a product name cannot be scraped from a URL
	ErrProductNameNotFound = errors.New("could not extract product name from url")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
