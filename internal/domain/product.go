package domain

import "fmt"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PictureURL  string  `json:"pictureUrl"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is one page of a paginated product listing.
type Page struct {
	PageIndex int       `json:"pageIndex"`
	PageSize  int       `json:"pageSize"`
	Count     int       `json:"count"`
	Data      []Product `json:"data"`
}

// ShopParams is the filter/sort/pagination state of a product listing query.
type ShopParams struct {
	BrandID    int64
	TypeID     int64
	Sort       string
	PageNumber int
	PageSize   int
	Search     string
}

// DefaultShopParams matches the listing's initial state.
func DefaultShopParams() ShopParams {
	return ShopParams{
		Sort:       "name",
		PageNumber: 1,
		PageSize:   6,
	}
}

// CacheKey returns the canonical string form of the params. Field order is
// fixed; two queries hit the same cache entry iff every field matches.
func (p ShopParams) CacheKey() string {
	return fmt.Sprintf("%d-%d-%s-%d-%d-%s", p.BrandID, p.TypeID, p.Sort, p.PageNumber, p.PageSize, p.Search)
}
