package cache

import (
	"context"
	"time"
)

// ComputeFunc menghasilkan value saat cache miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache port, pola cache-aside. Kontrak penting:
//   - hit dalam TTL -> return cached value, compute tidak dipanggil
//   - miss ATAU backend down -> compute dipanggil, hasil disimpan best-effort
//   - error backend tidak pernah bocor ke caller; satu-satunya error yang
//     keluar dari GetOrCompute adalah error dari compute sendiri
type Cache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}
