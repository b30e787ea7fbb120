package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
)

// DefaultTTL is how long a loaded taxonomy is served before the file is re-read
const DefaultTTL = 5 * time.Minute

const cacheKeyPrefix = "taxonomy:"

// StoreConfig holds configuration for the taxonomy store
type StoreConfig struct {
	Path string
	TTL  time.Duration
}

// Store serves the taxonomy file through the cache, reloading on expiry
type Store struct {
	path   string
	ttl    time.Duration
	cache  domain.CacheRepository[[]domain.ProductCategoryEntry]
	load   func(string) ([]domain.ProductCategoryEntry, error)
	logger *zap.Logger

	// serializes reloads so concurrent misses read the file once
	reloadMu sync.Mutex
}

// NewStore creates a taxonomy store. An empty Path yields a store with no taxonomy.
func NewStore(
	config StoreConfig,
	cache domain.CacheRepository[[]domain.ProductCategoryEntry],
	logger *zap.Logger,
) *Store {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		path:   config.Path,
		ttl:    ttl,
		cache:  cache,
		load:   LoadFile,
		logger: logger.Named("taxonomy"),
	}
}

// Configured reports whether a taxonomy file is set
func (s *Store) Configured() bool {
	return s.path != ""
}

// Entries returns the current taxonomy. The slice is shared and must not be modified.
// Flow: check cache -> read file -> cache -> return
func (s *Store) Entries(ctx context.Context) ([]domain.ProductCategoryEntry, error) {
	if !s.Configured() {
		return nil, nil
	}

	key := cacheKeyPrefix + s.path

	if entries, err := s.cache.Get(ctx, key); err == nil {
		return entries, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.Error(err))
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	// another caller may have reloaded while we waited
	if entries, err := s.cache.Get(ctx, key); err == nil {
		return entries, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	entries, err := s.load(s.path)
	if err != nil {
		s.logger.Error("failed to load taxonomy", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrTaxonomyUnavailable, err)
	}

	if err := s.cache.Set(ctx, key, entries, s.ttl); err != nil {
		s.logger.Warn("failed to cache taxonomy", zap.Error(err))
	}

	s.logger.Info("taxonomy loaded",
		zap.String("path", s.path),
		zap.Int("entries", len(entries)),
		zap.Duration("took", time.Since(start)),
	)

	return entries, nil
}

// Invalidate drops the cached taxonomy so the next read goes to the file
func (s *Store) Invalidate(ctx context.Context) error {
	if !s.Configured() {
		return nil
	}
	return s.cache.Delete(ctx, cacheKeyPrefix+s.path)
}
