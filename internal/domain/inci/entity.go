package inci

import "context"

// Ingredient satu baris hasil INCI lookup
type Ingredient struct {
	Name        string `json:"name"`
	Function    string `json:"function,omitempty"`
	Safety      string `json:"safety,omitempty"`
	Comedogenic string `json:"comedogenic,omitempty"`
}

// ProductInfo hasil lookup untuk satu produk.
// Source: "curated" | "scraped" | "unavailable"
type ProductInfo struct {
	ProductName string       `json:"productName"`
	Brand       string       `json:"brand,omitempty"`
	Source      string       `json:"source"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Client port untuk ingredient lookup
type Client interface {
	ProductInfo(ctx context.Context, slug string) (*ProductInfo, error)
}
