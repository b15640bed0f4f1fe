// Package cache provides a read-through Redis cache over a catalog
// repository. Catalog reads dominate the booking path (every order
// creation resolves a snapshot), so single-service lookups are cached and
// invalidated on writes.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
	platformredis "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/redis"
)

var _ ports.Repository = (*Repository)(nil)

const (
	cacheOperation = "catalog-service"
	cacheTTL       = 5 * time.Minute
)

// Repository decorates a catalog repository with a Redis read-through
// cache. Cache failures degrade to the inner repository, never to errors.
type Repository struct {
	inner ports.Repository
	cache *platformredis.Client
}

func NewRepository(inner ports.Repository, cache *platformredis.Client) *Repository {
	return &Repository{inner: inner, cache: cache}
}

func (r *Repository) Save(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	saved, err := r.inner.Save(ctx, service)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.ID)
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if cached, ok := r.lookup(ctx, id); ok {
		return cached, nil
	}
	service, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, service)
	return service, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	return r.inner.List(ctx)
}

func (r *Repository) lookup(ctx context.Context, id uuid.UUID) (*domain.Service, bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, err := r.cache.Get(ctx, r.cache.Key(cacheOperation, id.String()))
	if err != nil || raw == "" {
		return nil, false
	}
	var service domain.Service
	if err := json.Unmarshal([]byte(raw), &service); err != nil {
		return nil, false
	}
	return &service, true
}

func (r *Repository) store(ctx context.Context, service *domain.Service) {
	if r.cache == nil || service == nil {
		return
	}
	raw, err := json.Marshal(service)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, r.cache.Key(cacheOperation, service.ID.String()), string(raw), cacheTTL)
}

func (r *Repository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, r.cache.Key(cacheOperation, id.String()))
}
