package provider

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
)

// Store операции репозитория, которые кэширует CachedRepository
type Store interface {
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	SetApproved(ctx context.Context, id int64, approved bool, now time.Time) error
}

// CachedRepository кэширует чтение врача по ID.
// Внутри транзакции кэш не используется, запись сбрасывает ключ.
// После commit транзакции с записью ключ сбрасывается через Invalidate
type CachedRepository struct {
	store Store
	cache *cache.Cache
}

// NewCachedRepository ttl задает время жизни записи
func NewCachedRepository(store Store, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *CachedRepository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	return r.store.Create(ctx, p)
}

func (r *CachedRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return r.store.GetByID(ctx, id)
	}

	key := cacheKey(id)
	if cached, ok := r.cache.Get(key); ok {
		p := *cached.(*domain.Provider)
		return &p, nil
	}

	p, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored := *p
	r.cache.SetDefault(key, &stored)
	return p, nil
}

func (r *CachedRepository) SetApproved(ctx context.Context, id int64, approved bool, now time.Time) error {
	defer r.cache.Delete(cacheKey(id))
	return r.store.SetApproved(ctx, id, approved, now)
}

// Invalidate сбрасывает закэшированного врача
func (r *CachedRepository) Invalidate(id int64) {
	r.cache.Delete(cacheKey(id))
}

func cacheKey(id int64) string {
	return "provider:" + strconv.FormatInt(id, 10)
}
