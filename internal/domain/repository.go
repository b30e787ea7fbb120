package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TaxonomyRepository supplies the already-parsed product taxonomy.
// Entries returns nil, nil when no taxonomy is configured.
type TaxonomyRepository interface {
	Entries(ctx context.Context) ([]ProductCategoryEntry, error)
}
