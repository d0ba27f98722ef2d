package inci

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CeraVe Moisturizing Cream", "cerave-moisturizing-cream"},
		{"  La Roche-Posay  Toleriane ", "la-roche-posay-toleriane"},
		{"Neutrogena Hydro Boost Water Gel", "neutrogena-hydro-boost-water-gel"},
		{"100% Pure!!", "100-pure"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "in=%q", tt.in)
	}
}

func TestProductInfoCuratedHit(t *testing.T) {
	// base URL sengaja mati; curated hit tidak boleh menyentuh network
	c := NewClientWithBaseURL("http://127.0.0.1:1")

	info, err := c.ProductInfo(context.Background(), "CeraVe Moisturizing Cream")
	require.NoError(t, err)

	assert.Equal(t, "curated", info.Source)
	assert.Equal(t, "CeraVe", info.Brand)
	require.NotEmpty(t, info.Ingredients)
	assert.Equal(t, "Aqua / Water", info.Ingredients[0].Name)
}

func TestProductInfoScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/some-mystery-serum", r.URL.Path)
		w.Write([]byte(`<html><body>
			<h1 class="product-title">Mystery Serum</h1>
			<a class="underline brand" href="/brands/x">Mystery Labs</a>
			<a class="black ingred-link" href="/i/aqua">Aqua</a>
			<a class="black ingred-link" href="/i/niacinamide">Niacinamide</a>
			<a class="black ingred-link" href="/i/aqua">Aqua</a>
		</body></html>`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	info, err := c.ProductInfo(context.Background(), "Some Mystery Serum")
	require.NoError(t, err)

	assert.Equal(t, "scraped", info.Source)
	assert.Equal(t, "Mystery Serum", info.ProductName)
	assert.Equal(t, "Mystery Labs", info.Brand)
	// duplicate ingredient link cuma dihitung sekali
	require.Len(t, info.Ingredients, 2)
	assert.Equal(t, "Aqua", info.Ingredients[0].Name)
	assert.Equal(t, "Niacinamide", info.Ingredients[1].Name)
}

func TestProductInfoDegradesWhenUnavailable(t *testing.T) {
	c := NewClientWithBaseURL("http://127.0.0.1:1")

	info, err := c.ProductInfo(context.Background(), "Totally Unknown Product")
	require.NoError(t, err, "lookup luar gagal tidak boleh jadi error")

	assert.Equal(t, "unavailable", info.Source)
	assert.Empty(t, info.Ingredients)
	assert.NotNil(t, info.Ingredients)
}

func TestProductInfoDegradesOnUnparseablePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	info, err := c.ProductInfo(context.Background(), "Js Rendered Product")
	require.NoError(t, err)
	assert.Equal(t, "unavailable", info.Source)
}

func TestProductInfoEmptyNameIsError(t *testing.T) {
	c := NewClientWithBaseURL("http://127.0.0.1:1")
	_, err := c.ProductInfo(context.Background(), "   ")
	assert.Error(t, err)
}
