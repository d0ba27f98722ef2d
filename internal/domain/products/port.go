package products

import "context"

// Query parameter untuk product lookup. SkinType dan Condition sudah
// berupa kategori katalog lowercase (hasil Normalizer), bukan raw label.
type Query struct {
	SkinType  string
	Condition string
	Limit     int
}

// Source port: satu sumber produk (external API, local catalog, ...).
// Resolver mencoba source berurutan; source pertama yang tidak error
// menang. Source tidak perlu dedupe/truncate, itu urusan resolver.
type Source interface {
	Name() string
	Find(ctx context.Context, q Query) ([]Product, error)
}

// Catalog port untuk katalog lokal (dipakai read endpoint + reload).
type Catalog interface {
	BySkinType(skinType string) []Product
	ByCondition(condition string) []Product
	All() []Product
	SkinTypes() []string
	Conditions() []string
	Reload() error
}
