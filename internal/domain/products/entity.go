package products

// Product adalah shared read-only reference data, tidak pernah dimutasi
// oleh pipeline.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// Dedupe buang duplicate berdasarkan id, urutan first-seen dipertahankan.
func Dedupe(in []Product) []Product {
	seen := make(map[string]bool, len(in))
	out := make([]Product, 0, len(in))
	for _, p := range in {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Truncate potong list ke limit. limit <= 0 berarti pakai default caller.
func Truncate(in []Product, limit int) []Product {
	if limit >= 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
