package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/glowmance/glowmance-backend/internal/domain/analysis"
	"github.com/glowmance/glowmance-backend/internal/domain/cache"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
	domain "github.com/glowmance/glowmance-backend/internal/domain/products"
)

// DefaultLimit jumlah rekomendasi standar untuk pipeline analysis
const DefaultLimit = 3

// cachePrefix dipakai untuk invalidation by pattern
const cachePrefix = "products:"

// Service implements use-cases untuk product recommendation.
// Sources dicoba berurutan (external API dulu kalau ada, katalog lokal
// paling belakang); source pertama yang tidak error menang. Dedupe dan
// truncate selalu di sini, bukan di source, supaya nambah source baru
// tidak menyentuh logika itu.
type Service struct {
	Sources []domain.Source
	Catalog domain.Catalog
	Cache   cache.Cache
	TTL     time.Duration
	Faults  faults.Repository

	// observability hook: dipanggil tiap jatuh dari satu source ke
	// source berikutnya
	OnFallback func()
}

// Resolve balikin list produk untuk (skinType, condition), deduplicated,
// maksimal limit item. List kosong itu hasil valid, bukan error.
func (s *Service) Resolve(ctx context.Context, skinType analysis.SkinType, condition analysis.Condition, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := domain.Query{
		SkinType:  skinType.Category(),
		Condition: condition.Category(),
		Limit:     limit,
	}

	key := fmt.Sprintf("%sresolve:%s:%s:%d", cachePrefix, q.SkinType, q.Condition, limit)
	return s.cached(ctx, key, func(ctx context.Context) []domain.Product {
		return s.resolve(ctx, q)
	})
}

func (s *Service) resolve(ctx context.Context, q domain.Query) []domain.Product {
	for _, src := range s.Sources {
		list, err := src.Find(ctx, q)
		if err != nil {
			log.Printf("product source %s failed, falling back: %v", src.Name(), err)
			if s.OnFallback != nil {
				s.OnFallback()
			}
			s.recordFault(ctx, src.Name(), err)
			continue
		}
		return domain.Truncate(domain.Dedupe(list), q.Limit)
	}
	return []domain.Product{}
}

// ListAll untuk read endpoint katalog
func (s *Service) ListAll(ctx context.Context, limit int) ([]domain.Product, error) {
	key := fmt.Sprintf("%sall:%d", cachePrefix, limit)
	return s.cached(ctx, key, func(ctx context.Context) []domain.Product {
		return domain.Truncate(s.Catalog.All(), limit)
	})
}

// ListBySkinType untuk read endpoint. Raw label dinormalisasi dulu,
// jadi input tidak dikenal jatuh ke kategori default, bukan error.
func (s *Service) ListBySkinType(ctx context.Context, rawType string, limit int) ([]domain.Product, error) {
	category := analysis.NormalizeSkinType(rawType).Category()
	key := fmt.Sprintf("%sskin-type:%s:%d", cachePrefix, category, limit)
	return s.cached(ctx, key, func(ctx context.Context) []domain.Product {
		return domain.Truncate(domain.Dedupe(s.Catalog.BySkinType(category)), limit)
	})
}

// ListByCondition untuk read endpoint
func (s *Service) ListByCondition(ctx context.Context, rawCondition string, limit int) ([]domain.Product, error) {
	category := analysis.NormalizeCondition(rawCondition).Category()
	key := fmt.Sprintf("%scondition:%s:%d", cachePrefix, category, limit)
	return s.cached(ctx, key, func(ctx context.Context) []domain.Product {
		return domain.Truncate(domain.Dedupe(s.Catalog.ByCondition(category)), limit)
	})
}

// ReloadCatalog reload katalog + purge semua cached product query.
func (s *Service) ReloadCatalog(ctx context.Context) error {
	if err := s.Catalog.Reload(); err != nil {
		return err
	}
	if s.Cache != nil {
		_ = s.Cache.DeletePattern(ctx, cachePrefix+"*")
	}
	return nil
}

// cached jalanin compute lewat cache-aside kalau cache di-wire.
// Nilai disimpan sebagai JSON; cache yang korup diperlakukan sebagai miss.
func (s *Service) cached(ctx context.Context, key string, compute func(ctx context.Context) []domain.Product) ([]domain.Product, error) {
	if s.Cache == nil {
		return compute(ctx), nil
	}

	raw, err := s.Cache.GetOrCompute(ctx, key, s.TTL, func(ctx context.Context) ([]byte, error) {
		return json.Marshal(compute(ctx))
	})
	if err != nil {
		return nil, err
	}

	var out []domain.Product
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("corrupt cache entry key=%s, recomputing: %v", key, err)
		_ = s.Cache.Delete(ctx, key)
		return compute(ctx), nil
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (s *Service) recordFault(ctx context.Context, source string, cause error) {
	if s.Faults == nil {
		return
	}
	f := &faults.Fault{
		Stage:   faults.StageProducts,
		Message: fmt.Sprintf("source %s: %v", source, cause),
	}
	if err := s.Faults.Save(ctx, f); err != nil {
		log.Printf("failed to record product fault: %v", err)
	}
}
