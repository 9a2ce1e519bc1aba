// Package catalog memoizes product-listing queries so rapid filter changes
// do not refetch identical pages within a session.
package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// API is the slice of the storefront client the cache needs.
type API interface {
	Products(ctx context.Context, params domain.ShopParams) (*domain.Page, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	Brands(ctx context.Context) ([]domain.Brand, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

type Cache struct {
	mu         sync.Mutex
	api        API
	pages      map[string]*domain.Page
	brands     []domain.Brand
	categories []domain.Category
	sfg        singleflight.Group // Prevents duplicate reference-list fetches
}

func NewCache(api API) *Cache {
	return &Cache{
		api:   api,
		pages: make(map[string]*domain.Page),
	}
}

// Query returns the product page for params. With bypass false a cached page
// is returned without any network call; with bypass true the whole cache is
// discarded first and a fresh page fetched. Invalidation is deliberately
// coarse: the server may have repriced or restocked anything.
func (c *Cache) Query(ctx context.Context, params domain.ShopParams, bypass bool) (*domain.Page, error) {
	key := params.CacheKey()

	c.mu.Lock()
	if bypass {
		c.pages = make(map[string]*domain.Page)
	} else if page, ok := c.pages[key]; ok {
		c.mu.Unlock()
		return page, nil
	}
	c.mu.Unlock()

	page, err := c.api.Products(ctx, params)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pages[key] = page
	c.mu.Unlock()
	return page, nil
}

// Product returns the product by id, scanning cached pages before falling
// back to a dedicated fetch.
func (c *Cache) Product(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.Lock()
	for _, page := range c.pages {
		for i := range page.Data {
			if page.Data[i].ID == id {
				product := page.Data[i]
				c.mu.Unlock()
				return &product, nil
			}
		}
	}
	c.mu.Unlock()

	return c.api.Product(ctx, id)
}

// Brands returns the brand reference list, fetching it at most once per
// session. Concurrent callers share a single in-flight request.
func (c *Cache) Brands(ctx context.Context) ([]domain.Brand, error) {
	c.mu.Lock()
	if len(c.brands) > 0 {
		brands := c.brands
		c.mu.Unlock()
		return brands, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sfg.Do("brands", func() (interface{}, error) {
		brands, err := c.api.Brands(ctx)
		if err != nil {
			return nil, err
		}
		brands = dedupeBrands(brands)
		c.mu.Lock()
		c.brands = brands
		c.mu.Unlock()
		return brands, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Brand), nil
}

// Categories mirrors Brands for the category reference list.
func (c *Cache) Categories(ctx context.Context) ([]domain.Category, error) {
	c.mu.Lock()
	if len(c.categories) > 0 {
		categories := c.categories
		c.mu.Unlock()
		return categories, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sfg.Do("categories", func() (interface{}, error) {
		categories, err := c.api.Categories(ctx)
		if err != nil {
			return nil, err
		}
		categories = dedupeCategories(categories)
		c.mu.Lock()
		c.categories = categories
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

// Clear discards all cached pages.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*domain.Page)
}

// dedupeBrands drops duplicate ids, keeping first occurrence order. Defends
// against an upstream catalog returning duplicate entries.
func dedupeBrands(brands []domain.Brand) []domain.Brand {
	seen := make(map[int64]struct{}, len(brands))
	unique := brands[:0]
	for _, b := range brands {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		unique = append(unique, b)
	}
	return unique
}

func dedupeCategories(categories []domain.Category) []domain.Category {
	seen := make(map[int64]struct{}, len(categories))
	unique := categories[:0]
	for _, c := range categories {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
