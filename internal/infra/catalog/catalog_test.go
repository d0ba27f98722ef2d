package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmance/glowmance-backend/internal/domain/products"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"oily", "dry", "combination", "normal"}, c.SkinTypes())
	assert.ElementsMatch(t, []string{"acne", "eczema", "rosacea", "healthy"}, c.Conditions())

	for _, st := range c.SkinTypes() {
		list := c.BySkinType(st)
		assert.NotEmpty(t, list, "skin type %s", st)
		for _, p := range list {
			assert.NotEmpty(t, p.ID)
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Brand)
		}
	}
}

func TestUnknownKeysYieldEmptyList(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Empty(t, c.BySkinType("radiant"))
	assert.Empty(t, c.ByCondition("wrinkles"))
}

func TestAllIsDeduplicated(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	all := c.All()
	require.NotEmpty(t, all)
	assert.Equal(t, products.Dedupe(all), all)
}

func TestSourceConditionBeforeSkinType(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	src := &Source{Catalog: c}

	assert.Equal(t, "local-catalog", src.Name())

	got, err := src.Find(context.Background(), products.Query{
		SkinType:  "oily",
		Condition: "acne",
		Limit:     3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// treatment produk (acne) harus duluan sebelum general care (oily)
	acne := c.ByCondition("acne")
	require.NotEmpty(t, acne)
	assert.Equal(t, acne[0].ID, got[0].ID)
}

func TestReloadKeepsCatalogUsable(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	before := len(c.All())
	require.NoError(t, c.Reload())
	assert.Equal(t, before, len(c.All()))
}
