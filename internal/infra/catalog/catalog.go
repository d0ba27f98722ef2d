package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/glowmance/glowmance-backend/internal/domain/products"
)

//go:embed products.json
var productsJSON []byte

type catalogData struct {
	SkinTypes map[string][]products.Product `json:"skinTypes"`
	Diseases  map[string][]products.Product `json:"diseases"`
}

// Catalog adalah katalog produk lokal, dimuat sekali saat start dari
// embedded JSON. Read-only untuk pipeline; Reload cuma untuk admin path.
type Catalog struct {
	mu   sync.RWMutex
	data catalogData
}

func Load() (*Catalog, error) {
	c := &Catalog{}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload parse ulang embedded data. Dipertahankan sebagai operasi
// terpisah supaya admin endpoint bisa purge cache + reload bareng.
func (c *Catalog) Reload() error {
	var data catalogData
	if err := json.Unmarshal(productsJSON, &data); err != nil {
		return fmt.Errorf("parse product catalog: %w", err)
	}
	if data.SkinTypes == nil {
		data.SkinTypes = map[string][]products.Product{}
	}
	if data.Diseases == nil {
		data.Diseases = map[string][]products.Product{}
	}
	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
	log.Printf("product catalog loaded: %d skin types, %d conditions",
		len(data.SkinTypes), len(data.Diseases))
	return nil
}

// BySkinType balikin list untuk satu skin type category (lowercase key).
// Key tidak dikenal -> list kosong, bukan error.
func (c *Catalog) BySkinType(skinType string) []products.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]products.Product(nil), c.data.SkinTypes[skinType]...)
}

// ByCondition balikin list untuk satu condition category (lowercase key).
func (c *Catalog) ByCondition(condition string) []products.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]products.Product(nil), c.data.Diseases[condition]...)
}

// All gabungan semua kategori, deduplicated.
func (c *Catalog) All() []products.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all []products.Product
	for _, key := range sortedKeys(c.data.Diseases) {
		all = append(all, c.data.Diseases[key]...)
	}
	for _, key := range sortedKeys(c.data.SkinTypes) {
		all = append(all, c.data.SkinTypes[key]...)
	}
	return products.Dedupe(all)
}

func (c *Catalog) SkinTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.data.SkinTypes)
}

func (c *Catalog) Conditions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.data.Diseases)
}

func sortedKeys(m map[string][]products.Product) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source adapter: katalog sebagai product Source paling belakang di
// fallback chain. Condition-specific dulu (treatment menang dari
// general care), baru skin-type. Tidak pernah error.
type Source struct {
	Catalog *Catalog
}

func (s *Source) Name() string { return "local-catalog" }

func (s *Source) Find(ctx context.Context, q products.Query) ([]products.Product, error) {
	out := s.Catalog.ByCondition(q.Condition)
	out = append(out, s.Catalog.BySkinType(q.SkinType)...)
	return out, nil
}
