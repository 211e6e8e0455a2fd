package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is an in-memory cache with per-entry expiration
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

// GetOrSet is race free: when two callers miss at once only the first stored
// value survives and both receive it.
func (cs *CacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	if err := cs.cache.Add(key, val, duration); err != nil {
		// lost the race, use the stored entry
		if existing, found := cs.Get(key); found {
			return existing, nil
		}
		cs.Set(key, val, duration)
	}
	return val, nil
}

func (cs *CacheService) ItemCount() int {
	return cs.cache.ItemCount()
}
