package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

type mockAPI struct {
	mu             sync.Mutex
	pages          map[string]*domain.Page
	products       map[int64]*domain.Product
	brands         []domain.Brand
	categories     []domain.Category
	productsCalls  int32
	productCalls   int32
	brandsCalls    int32
	categoryCalls  int32
	brandsBlock    chan struct{} // when set, Brands waits before returning
	err            error
}

func (m *mockAPI) Products(_ context.Context, params domain.ShopParams) (*domain.Page, error) {
	atomic.AddInt32(&m.productsCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if page, ok := m.pages[params.CacheKey()]; ok {
		return page, nil
	}
	return &domain.Page{PageIndex: params.PageNumber, PageSize: params.PageSize}, nil
}

func (m *mockAPI) Product(_ context.Context, id int64) (*domain.Product, error) {
	atomic.AddInt32(&m.productCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product %d not found", id)
}

func (m *mockAPI) Brands(_ context.Context) ([]domain.Brand, error) {
	atomic.AddInt32(&m.brandsCalls, 1)
	if m.brandsBlock != nil {
		<-m.brandsBlock
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brands, m.err
}

func (m *mockAPI) Categories(_ context.Context) ([]domain.Category, error) {
	atomic.AddInt32(&m.categoryCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories, m.err
}

func TestCacheKey_Canonical(t *testing.T) {
	params := domain.ShopParams{BrandID: 2, TypeID: 3, Sort: "priceAsc", PageNumber: 1, PageSize: 6, Search: "tea"}
	assert.Equal(t, "2-3-priceAsc-1-6-tea", params.CacheKey())

	// Any field change produces a different key.
	changed := params
	changed.PageNumber = 2
	assert.NotEqual(t, params.CacheKey(), changed.CacheKey())
}

func TestQuery_SecondIdenticalCallHitsCache(t *testing.T) {
	api := &mockAPI{}
	sut := NewCache(api)
	params := domain.DefaultShopParams()

	first, err := sut.Query(context.Background(), params, false)
	require.NoError(t, err)
	second, err := sut.Query(context.Background(), params, false)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.productsCalls))
}

func TestQuery_DifferentParamsMiss(t *testing.T) {
	api := &mockAPI{}
	sut := NewCache(api)

	_, err := sut.Query(context.Background(), domain.ShopParams{Sort: "name", PageNumber: 1, PageSize: 6}, false)
	require.NoError(t, err)
	_, err = sut.Query(context.Background(), domain.ShopParams{Sort: "name", PageNumber: 2, PageSize: 6}, false)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&api.productsCalls))
}

func TestQuery_BypassAlwaysFetchesAndClears(t *testing.T) {
	api := &mockAPI{}
	sut := NewCache(api)
	params := domain.DefaultShopParams()
	other := params
	other.PageNumber = 2
	ctx := context.Background()

	_, err := sut.Query(ctx, params, false)
	require.NoError(t, err)
	_, err = sut.Query(ctx, other, false)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&api.productsCalls))

	// Bypass issues a network call and discards every prior entry.
	_, err = sut.Query(ctx, params, true)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&api.productsCalls))

	_, err = sut.Query(ctx, other, false)
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&api.productsCalls))
}

func TestQuery_FetchFailureNotCached(t *testing.T) {
	api := &mockAPI{err: fmt.Errorf("upstream down")}
	sut := NewCache(api)

	_, err := sut.Query(context.Background(), domain.DefaultShopParams(), false)
	require.ErrorContains(t, err, "upstream down")

	api.mu.Lock()
	api.err = nil
	api.mu.Unlock()
	_, err = sut.Query(context.Background(), domain.DefaultShopParams(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&api.productsCalls))
}

func TestProduct_FoundInCachedPage(t *testing.T) {
	params := domain.DefaultShopParams()
	api := &mockAPI{
		pages: map[string]*domain.Page{
			params.CacheKey(): {Data: []domain.Product{{ID: 7, Name: "Koshari"}}},
		},
	}
	sut := NewCache(api)
	ctx := context.Background()

	_, err := sut.Query(ctx, params, false)
	require.NoError(t, err)

	product, err := sut.Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Koshari", product.Name)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.productCalls))
}

func TestProduct_FallsBackToDirectFetch(t *testing.T) {
	api := &mockAPI{products: map[int64]*domain.Product{9: {ID: 9, Name: "Falafel"}}}
	sut := NewCache(api)

	product, err := sut.Product(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Falafel", product.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.productCalls))
}

func TestBrands_FetchedOncePerSession(t *testing.T) {
	api := &mockAPI{brands: []domain.Brand{{ID: 1, Name: "A"}}}
	sut := NewCache(api)
	ctx := context.Background()

	first, err := sut.Brands(ctx)
	require.NoError(t, err)
	second, err := sut.Brands(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.brandsCalls))
}

func TestBrands_ConcurrentCallersShareOneFetch(t *testing.T) {
	block := make(chan struct{})
	api := &mockAPI{brands: []domain.Brand{{ID: 1, Name: "A"}}, brandsBlock: block}
	sut := NewCache(api)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			brands, err := sut.Brands(context.Background())
			assert.NoError(t, err)
			assert.Len(t, brands, 1)
		}()
	}
	// Give every caller time to join the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.brandsCalls))
}

func TestBrands_DeduplicatedByID(t *testing.T) {
	api := &mockAPI{brands: []domain.Brand{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 1, Name: "A again"},
	}}
	sut := NewCache(api)

	brands, err := sut.Brands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "A", brands[0].Name)
	assert.Equal(t, "B", brands[1].Name)
}

func TestCategories_DeduplicatedByID(t *testing.T) {
	api := &mockAPI{categories: []domain.Category{
		{ID: 3, Name: "Food"}, {ID: 3, Name: "Food"}, {ID: 4, Name: "Drinks"},
	}}
	sut := NewCache(api)

	categories, err := sut.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.categoryCalls))
}

func TestClear_DropsCachedPages(t *testing.T) {
	api := &mockAPI{}
	sut := NewCache(api)
	ctx := context.Background()

	_, err := sut.Query(ctx, domain.DefaultShopParams(), false)
	require.NoError(t, err)

	sut.Clear()

	_, err = sut.Query(ctx, domain.DefaultShopParams(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&api.productsCalls))
}
