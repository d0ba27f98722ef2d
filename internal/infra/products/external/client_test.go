package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmance/glowmance-backend/internal/domain/products"
)

func TestFind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "oily", r.URL.Query().Get("skin_type"))
		assert.Equal(t, "acne", r.URL.Query().Get("condition"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]any{
			"products": []products.Product{
				{ID: "ext-1", Name: "Acne Serum", Brand: "DermaCo"},
				{ID: "ext-2", Name: "Oil Control Toner", Brand: "DermaCo"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key", time.Second)
	got, err := c.Find(context.Background(), products.Query{SkinType: "oily", Condition: "acne", Limit: 3})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "ext-1", got[0].ID)
}

func TestFindNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.Find(context.Background(), products.Query{Limit: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFindUnreachableIsError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k", 200*time.Millisecond)
	_, err := c.Find(context.Background(), products.Query{Limit: 3})
	assert.Error(t, err)
}

func TestFindEmptyBodyYieldsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"products": []products.Product{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	got, err := c.Find(context.Background(), products.Query{Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, got)
}
