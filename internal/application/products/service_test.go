package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmance/glowmance-backend/internal/domain/analysis"
	domaincache "github.com/glowmance/glowmance-backend/internal/domain/cache"
	domain "github.com/glowmance/glowmance-backend/internal/domain/products"
	infracache "github.com/glowmance/glowmance-backend/internal/infra/cache"
)

type fakeSource struct {
	name  string
	list  []domain.Product
	err   error
	calls int
	lastQ domain.Query
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Find(ctx context.Context, q domain.Query) ([]domain.Product, error) {
	f.calls++
	f.lastQ = q
	return f.list, f.err
}

type fakeCatalog struct {
	bySkin      map[string][]domain.Product
	byCondition map[string][]domain.Product
	reloads     int
}

func (f *fakeCatalog) BySkinType(s string) []domain.Product  { return f.bySkin[s] }
func (f *fakeCatalog) ByCondition(c string) []domain.Product { return f.byCondition[c] }
func (f *fakeCatalog) All() []domain.Product {
	var all []domain.Product
	for _, v := range f.byCondition {
		all = append(all, v...)
	}
	for _, v := range f.bySkin {
		all = append(all, v...)
	}
	return domain.Dedupe(all)
}
func (f *fakeCatalog) SkinTypes() []string  { return nil }
func (f *fakeCatalog) Conditions() []string { return nil }
func (f *fakeCatalog) Reload() error        { f.reloads++; return nil }

// brokenCache error di semua operasi; service harus tetap jalan.
type brokenCache struct{}

func (brokenCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute domaincache.ComputeFunc) ([]byte, error) {
	return compute(ctx)
}
func (brokenCache) Delete(ctx context.Context, key string) error { return nil }
func (brokenCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func prod(id string) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Brand: "Glow"}
}

func TestResolveFirstSourceWins(t *testing.T) {
	ext := &fakeSource{name: "external-api", list: []domain.Product{prod("e1"), prod("e2")}}
	local := &fakeSource{name: "local-catalog", list: []domain.Product{prod("l1")}}
	svc := &Service{Sources: []domain.Source{ext, local}}

	got, err := svc.Resolve(context.Background(), analysis.SkinOily, analysis.ConditionAcne, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.Product{prod("e1"), prod("e2")}, got)
	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, 0, local.calls, "local source tidak boleh dipanggil kalau external sukses")
}

func TestResolveFallsBackOnSourceError(t *testing.T) {
	ext := &fakeSource{name: "external-api", err: errors.New("status 503")}
	local := &fakeSource{name: "local-catalog", list: []domain.Product{prod("l1"), prod("l2")}}
	var fallbacks int
	svc := &Service{
		Sources:    []domain.Source{ext, local},
		OnFallback: func() { fallbacks++ },
	}

	got, err := svc.Resolve(context.Background(), analysis.SkinDry, analysis.ConditionEczema, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.Product{prod("l1"), prod("l2")}, got)
	assert.Equal(t, 1, fallbacks)
}

func TestResolveAllSourcesFailYieldsEmptyList(t *testing.T) {
	svc := &Service{Sources: []domain.Source{
		&fakeSource{name: "external-api", err: errors.New("down")},
		&fakeSource{name: "local-catalog", err: errors.New("down too")},
	}}

	got, err := svc.Resolve(context.Background(), analysis.SkinNormal, analysis.ConditionGeneral, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestResolveDeduplicatesAndTruncates(t *testing.T) {
	src := &fakeSource{name: "local-catalog", list: []domain.Product{
		prod("a"), prod("b"), prod("a"), prod("c"), prod("d"),
	}}
	svc := &Service{Sources: []domain.Source{src}}

	got, err := svc.Resolve(context.Background(), analysis.SkinOily, analysis.ConditionAcne, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.Product{prod("a"), prod("b"), prod("c")}, got)
}

func TestResolveUsesCatalogCategories(t *testing.T) {
	src := &fakeSource{name: "local-catalog"}
	svc := &Service{Sources: []domain.Source{src}}

	_, err := svc.Resolve(context.Background(), analysis.SkinSensitive, analysis.ConditionPsoriasis, 0)
	require.NoError(t, err)

	// sensitive -> normal shelf, psoriasis -> eczema shelf
	assert.Equal(t, "normal", src.lastQ.SkinType)
	assert.Equal(t, "eczema", src.lastQ.Condition)
	assert.Equal(t, DefaultLimit, src.lastQ.Limit)
}

func TestResolveCachesComputation(t *testing.T) {
	src := &fakeSource{name: "local-catalog", list: []domain.Product{prod("a")}}
	svc := &Service{
		Sources: []domain.Source{src},
		Cache:   infracache.NewMemory(),
		TTL:     time.Minute,
	}

	for i := 0; i < 3; i++ {
		got, err := svc.Resolve(context.Background(), analysis.SkinOily, analysis.ConditionAcne, 3)
		require.NoError(t, err)
		assert.Equal(t, []domain.Product{prod("a")}, got)
	}
	assert.Equal(t, 1, src.calls, "hit dalam TTL tidak boleh recompute")
}

func TestResolveSurvivesBrokenCache(t *testing.T) {
	src := &fakeSource{name: "local-catalog", list: []domain.Product{prod("a")}}
	svc := &Service{Sources: []domain.Source{src}, Cache: brokenCache{}, TTL: time.Minute}

	got, err := svc.Resolve(context.Background(), analysis.SkinOily, analysis.ConditionAcne, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("a")}, got)
}

func TestListBySkinTypeNormalizesRawInput(t *testing.T) {
	cat := &fakeCatalog{bySkin: map[string][]domain.Product{
		"oily":   {prod("o1")},
		"normal": {prod("n1")},
	}}
	svc := &Service{Catalog: cat}

	got, err := svc.ListBySkinType(context.Background(), "OILY", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("o1")}, got)

	// label tidak dikenal jatuh ke default shelf, bukan error
	got, err = svc.ListBySkinType(context.Background(), "radiant", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("n1")}, got)
}

func TestListByConditionNormalizesRawInput(t *testing.T) {
	cat := &fakeCatalog{byCondition: map[string][]domain.Product{
		"acne":    {prod("a1")},
		"healthy": {prod("h1")},
	}}
	svc := &Service{Catalog: cat}

	got, err := svc.ListByCondition(context.Background(), "akne", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("a1")}, got)

	got, err = svc.ListByCondition(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("h1")}, got)
}

func TestReloadCatalogPurgesProductCache(t *testing.T) {
	cat := &fakeCatalog{bySkin: map[string][]domain.Product{"oily": {prod("o1")}}}
	mem := infracache.NewMemory()
	svc := &Service{Catalog: cat, Cache: mem, TTL: time.Minute}

	_, err := svc.ListBySkinType(context.Background(), "oily", 10)
	require.NoError(t, err)

	require.NoError(t, svc.ReloadCatalog(context.Background()))
	assert.Equal(t, 1, cat.reloads)

	// setelah reload, query berikutnya harus recompute dari katalog baru
	cat.bySkin["oily"] = []domain.Product{prod("o2")}
	got, err := svc.ListBySkinType(context.Background(), "oily", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{prod("o2")}, got)
}
