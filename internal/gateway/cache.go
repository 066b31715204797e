package gateway

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/domain"
)

// DefaultCacheTTL is how long fetched records are reused.
const DefaultCacheTTL = time.Hour

// CachingFetcher keeps successful upstream results for a bounded duration.
// Failures are never cached.
type CachingFetcher struct {
	inner  Fetcher
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCachingFetcher wraps inner with a time-bounded cache.
func NewCachingFetcher(inner Fetcher, ttl time.Duration, logger *zap.Logger) *CachingFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingFetcher{
		inner:  inner,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// FetchProfile returns the cached profile of username, fetching it on a miss.
func (c *CachingFetcher) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	key := cacheKey("profile", username)
	if val, found := c.cache.Get(key); found {
		if profile, ok := val.(domain.Profile); ok {
			c.logger.Debug("cache hit", zap.String("key", key))
			return &profile, nil
		}
	}

	profile, err := c.inner.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, *profile)
	return profile, nil
}

// FetchRepositories returns the cached repositories of username, fetching them on a miss.
func (c *CachingFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	key := cacheKey("repos", username)
	if val, found := c.cache.Get(key); found {
		if repos, ok := val.([]domain.Repository); ok {
			c.logger.Debug("cache hit", zap.String("key", key))
			return append([]domain.Repository(nil), repos...), nil
		}
	}

	repos, err := c.inner.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, append([]domain.Repository(nil), repos...))
	return repos, nil
}

// Flush drops every cached record.
func (c *CachingFetcher) Flush() {
	c.cache.Flush()
}

// GitHub logins are case-insensitive.
func cacheKey(kind, username string) string {
	return kind + ":" + strings.ToLower(username)
}
