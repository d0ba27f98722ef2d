package inci

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	domain "github.com/glowmance/glowmance-backend/internal/domain/inci"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// curated ingredient table untuk produk populer; lookup murah dan tidak
// tergantung situs luar.
var curated = map[string]domain.ProductInfo{
	"cerave-moisturizing-cream": {
		ProductName: "Moisturizing Cream",
		Brand:       "CeraVe",
		Source:      "curated",
		Ingredients: []domain.Ingredient{
			{Name: "Aqua / Water", Function: "solvent", Safety: "good", Comedogenic: "0"},
			{Name: "Glycerin", Function: "skin-identical ingredient, moisturizer/humectant", Safety: "good", Comedogenic: "0"},
			{Name: "Cetearyl Alcohol", Function: "emollient, viscosity controlling, emulsifying", Safety: "good", Comedogenic: "2"},
			{Name: "Ceramide NP", Function: "skin-identical ingredient", Safety: "superstar", Comedogenic: "0"},
			{Name: "Hyaluronic Acid", Function: "skin-identical ingredient, moisturizer/humectant", Safety: "superstar", Comedogenic: "0"},
			{Name: "Niacinamide", Function: "skin brightening, anti-acne, cell-communicating ingredient", Safety: "superstar", Comedogenic: "0"},
		},
	},
	"la-roche-posay-toleriane-double-repair-face-moisturizer": {
		ProductName: "Toleriane Double Repair Face Moisturizer",
		Brand:       "La Roche-Posay",
		Source:      "curated",
		Ingredients: []domain.Ingredient{
			{Name: "Aqua / Water", Function: "solvent", Safety: "good", Comedogenic: "0"},
			{Name: "Glycerin", Function: "skin-identical ingredient, moisturizer/humectant", Safety: "good", Comedogenic: "0"},
			{Name: "Niacinamide", Function: "skin brightening, anti-acne, cell-communicating ingredient", Safety: "superstar", Comedogenic: "0"},
			{Name: "Dimethicone", Function: "emollient", Safety: "good", Comedogenic: "1"},
			{Name: "Ceramide-3", Function: "skin-identical ingredient", Safety: "superstar", Comedogenic: "0"},
		},
	},
	"neutrogena-hydro-boost-water-gel": {
		ProductName: "Hydro Boost Water Gel",
		Brand:       "Neutrogena",
		Source:      "curated",
		Ingredients: []domain.Ingredient{
			{Name: "Water", Function: "solvent", Safety: "good", Comedogenic: "0"},
			{Name: "Dimethicone", Function: "emollient", Safety: "good", Comedogenic: "1"},
			{Name: "Glycerin", Function: "moisturizer/humectant", Safety: "good", Comedogenic: "0"},
			{Name: "Hyaluronic Acid", Function: "skin-identical ingredient, moisturizer/humectant", Safety: "superstar", Comedogenic: "0"},
		},
	},
}

// Client untuk INCI ingredient lookup: curated table dulu, lalu
// best-effort scrape incidecoder.com. Situsnya render sebagian via JS
// jadi scrape bisa gagal; itu bukan error, hasilnya source=unavailable.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: "https://incidecoder.com",
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// NewClientWithBaseURL untuk test
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *Client) ProductInfo(ctx context.Context, slug string) (*domain.ProductInfo, error) {
	slug = Slugify(slug)
	if slug == "" {
		return nil, fmt.Errorf("product name is required")
	}

	if info, ok := curated[slug]; ok {
		return &info, nil
	}

	info, err := c.scrape(ctx, slug)
	if err != nil {
		// lookup luar gagal -> degrade, jangan error ke caller
		return &domain.ProductInfo{Source: "unavailable", Ingredients: []domain.Ingredient{}}, nil
	}
	return info, nil
}

// Slugify "CeraVe Moisturizing Cream" -> "cerave-moisturizing-cream"
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var (
	rxTitle  = regexp.MustCompile(`<h1[^>]*>([^<]+)</h1>`)
	rxBrand  = regexp.MustCompile(`class="[^"]*brand[^"]*"[^>]*>([^<]+)<`)
	rxIngred = regexp.MustCompile(`class="[^"]*ingred-link[^"]*"[^>]*>([^<]+)<`)
)

func (c *Client) scrape(ctx context.Context, slug string) (*domain.ProductInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+slug, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("incidecoder status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	html := string(body)

	// Heuristik regex di atas template HTML; bisa sedikit meleset kalau
	// template-nya berubah.
	info := &domain.ProductInfo{Source: "scraped", Ingredients: []domain.Ingredient{}}
	if m := rxTitle.FindStringSubmatch(html); m != nil {
		info.ProductName = strings.TrimSpace(m[1])
	}
	if m := rxBrand.FindStringSubmatch(html); m != nil {
		info.Brand = strings.TrimSpace(m[1])
	}
	seen := map[string]bool{}
	for _, m := range rxIngred.FindAllStringSubmatch(html, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		info.Ingredients = append(info.Ingredients, domain.Ingredient{Name: name})
	}

	if info.ProductName == "" || len(info.Ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients parsed for %s", slug)
	}
	return info, nil
}
