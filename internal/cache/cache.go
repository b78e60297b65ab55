package cache

import (
	"context"
	"time"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// CatalogCache caches the full product catalog between database reads. The
// assistant resolves every message against the catalog, so the list endpoint
// and the chat endpoint share this cache.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, bool, error)
	Set(ctx context.Context, products []domain.Product, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopCatalogCache disables caching; every read goes to the database.
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context) ([]domain.Product, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ []domain.Product, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context) error {
	return nil
}
