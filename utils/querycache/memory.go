package querycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache keeps JSON-encoded results in process. Values are stored
// encoded so callers never share slices with the cache.
type MemoryCache struct {
	store *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: cache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, found := m.store.Get(key)
	if !found {
		return false, nil
	}
	data, ok := raw.([]byte)
	if !ok {
		m.store.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store.Set(key, data, cache.DefaultExpiration)
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, names ...string) error {
	for key := range m.store.Items() {
		for _, name := range names {
			if belongsTo(key, name) {
				m.store.Delete(key)
				break
			}
		}
	}
	return nil
}

// Flush drops everything
func (m *MemoryCache) Flush() {
	m.store.Flush()
}
