package domain

import (
	"context"
	"time"
)

// SearchProvider is the capability every search backend implements. The
// pipeline depends only on this interface, never on a provider's transport.
type SearchProvider interface {
	// Name returns the provider identifier (e.g. "google", "brave", "tavily")
	Name() string

	// Search returns raw listings for a query. Implementations honor ctx
	// cancellation; maxResults is a hint, not a guarantee.
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// ProductNameExtractor turns a product-page URL into a best-guess
// human-readable product name. Used only to build the search query.
type ProductNameExtractor interface {
	ExtractName(ctx context.Context, pageURL string) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
