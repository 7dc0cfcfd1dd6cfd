package store

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// CacheStore keeps state documents in process memory. It backs tests
// and the simulator; real devices use RedisStore.
type CacheStore struct {
	cache *cache.Cache
}

var _ StateStore = &CacheStore{}

func NewCacheStore() *CacheStore {
	return &CacheStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *CacheStore) Save(_ context.Context, key string, value []byte) error {
	// Copy so later mutations of the caller's buffer cannot leak in.
	doc := make([]byte, len(value))
	copy(doc, value)
	s.cache.Set(key, doc, cache.NoExpiration)
	return nil
}

func (s *CacheStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := s.cache.Get(key); found {
		stored := x.([]byte)
		doc := make([]byte, len(stored))
		copy(doc, stored)
		return doc, true, nil
	}
	return nil, false, nil
}

func (s *CacheStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
