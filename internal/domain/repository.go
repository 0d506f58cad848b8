package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PriceSource defines the interface for the external price aggregation feed.
// Its retry/backoff behavior is consumed as a black box.
type PriceSource interface {
	FetchPrices(ctx context.Context, canonicalCode string) ([]PriceRecord, error)
}
