package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryData is an in-process key/value store with the same contract as Data.
type MemoryData struct {
	cache *gocache.Cache
}

func NewMemoryData() *MemoryData {
	return &MemoryData{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryData) Save(_ context.Context, key string, data []byte) error {
	m.cache.Set(key, append([]byte(nil), data...), gocache.NoExpiration)
	return nil
}

func (m *MemoryData) Load(_ context.Context, key string) ([]byte, error) {
	if value, found := m.cache.Get(key); found {
		return append([]byte(nil), value.([]byte)...), nil
	}
	return nil, nil
}

func (m *MemoryData) Remove(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
