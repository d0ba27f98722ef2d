package cache

import (
	"context"
	"errors"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/glowmance/glowmance-backend/internal/domain/cache"
)

// Redis implementasi cache.Cache di atas go-redis.
// Semua error backend didegradasi jadi pass-through miss: cache mati
// tidak boleh jadi user-facing error.
type Redis struct {
	rdb *goredis.Client
}

// NewRedis connect + ping. Error di sini fatal (startup), setelah jalan
// koneksi putus ditangani per-operasi.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx2).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{rdb: rdb}, nil
}

func (r *Redis) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute cache.ComputeFunc) ([]byte, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, goredis.Nil) {
		// backend unavailable -> treat as miss
		log.Printf("cache get error key=%s: %v", key, err)
	}

	out, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	// store best-effort; gagal simpan cuma dilog
	if err := r.rdb.Set(ctx, key, out, ttl).Err(); err != nil {
		log.Printf("cache set error key=%s: %v", key, err)
	}
	return out, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("cache delete error key=%s: %v", key, err)
	}
	return nil
}

// DeletePattern hapus semua key yang match glob pattern, dipakai saat
// catalog berubah. Key space bounded jadi Keys masih aman di sini.
func (r *Redis) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := r.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("cache delete pattern error pattern=%s: %v", pattern, err)
		return nil
	}
	if len(keys) > 0 {
		if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Printf("cache delete pattern error pattern=%s: %v", pattern, err)
		}
	}
	return nil
}

// Ping untuk health check
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
