package cache

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/glowmance/glowmance-backend/internal/domain/cache"
)

// Memory adalah in-process cache untuk mode tanpa redis (config kosong)
// dan untuk test. TTL-only, tanpa eviction lain: key space bounded.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

// NewMemoryWithClock supaya TTL gampang ditest
func NewMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	m.now = now
	return m
}

func (m *Memory) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute cache.ComputeFunc) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if ok && m.now().Before(e.expiresAt) {
		return e.value, nil
	}

	out, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = memEntry{value: out, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// DeletePattern pakai glob matching yang sama dengan redis KEYS.
func (m *Memory) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.entries, k)
		}
	}
	return nil
}
