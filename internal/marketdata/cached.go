package marketdata

import (
	"context"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/pkg/logger"
	"github.com/wonny/smartmoney/pkg/redis"
)

// Cache is the subset of redis.Cache used by CachedProvider
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedProvider decorates a provider with a read-through cache.
// Only successful reads are cached; cache failures fall through to the source.
type CachedProvider struct {
	next   contracts.MarketDataProvider
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedProvider wraps next with cache
func NewCachedProvider(next contracts.MarketDataProvider, cache Cache, ttl time.Duration, log *logger.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// readThrough serves key from cache or loads and stores it
func readThrough[T any](ctx context.Context, p *CachedProvider, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		p.logger.WithError(err).WithField("key", key).Debug("Cache read failed")
	}
	if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := p.cache.Set(ctx, key, value, p.ttl); err != nil {
		p.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return value, nil
}

func (p *CachedProvider) MarginHistory(ctx context.Context, code string) ([]contracts.MarginPoint, error) {
	return readThrough(ctx, p, redis.MarginKey(code), func() ([]contracts.MarginPoint, error) {
		return p.next.MarginHistory(ctx, code)
	})
}

func (p *CachedProvider) HoldingHistory(ctx context.Context, code string) ([]contracts.HoldingPoint, error) {
	return readThrough(ctx, p, redis.HoldingKey(code), func() ([]contracts.HoldingPoint, error) {
		return p.next.HoldingHistory(ctx, code)
	})
}

func (p *CachedProvider) CapitalFlow(ctx context.Context, code string) (*contracts.CapitalFlow, error) {
	return readThrough(ctx, p, redis.FlowKey(code), func() (*contracts.CapitalFlow, error) {
		return p.next.CapitalFlow(ctx, code)
	})
}

func (p *CachedProvider) DailyBars(ctx context.Context, code string, from, to time.Time) ([]contracts.Bar, error) {
	key := redis.BarsKey(code, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return readThrough(ctx, p, key, func() ([]contracts.Bar, error) {
		return p.next.DailyBars(ctx, code, from, to)
	})
}

func (p *CachedProvider) Valuation(ctx context.Context, code string) (*contracts.Valuation, error) {
	return readThrough(ctx, p, redis.ValuationKey(code), func() (*contracts.Valuation, error) {
		return p.next.Valuation(ctx, code)
	})
}
