package cache

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound         = errors.New("cache: no entry for key")
	ErrChecksumMismatch = errors.New("cache: stored body does not match its checksum")
)

// ResponseCache is a durable store of raw resource bodies keyed by a fixed
// resource name. The dictionary uses it to survive fetch failures.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

// MemoryCache is a ResponseCache that only lives as long as the process.
type MemoryCache struct {
	sync.RWMutex
	bodies map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{bodies: make(map[string][]byte)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()
	body, ok := m.bodies[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), body...), nil
}

func (m *MemoryCache) Put(ctx context.Context, key string, body []byte) error {
	m.Lock()
	defer m.Unlock()
	m.bodies[key] = append([]byte(nil), body...)
	return nil
}
