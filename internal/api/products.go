package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// Products fetches one page of the product listing. Zero-valued brand/type
// filters are omitted from the query, matching the server's contract.
func (c *Client) Products(ctx context.Context, params domain.ShopParams) (*domain.Page, error) {
	query := url.Values{}
	if params.BrandID > 0 {
		query.Set("brandId", strconv.FormatInt(params.BrandID, 10))
	}
	if params.TypeID > 0 {
		query.Set("categoryId", strconv.FormatInt(params.TypeID, 10))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	query.Set("sort", params.Sort)
	query.Set("pageIndex", strconv.Itoa(params.PageNumber))
	query.Set("pageSize", strconv.Itoa(params.PageSize))

	var page domain.Page
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Brands fetches the brand reference list.
func (c *Client) Brands(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := c.do(ctx, http.MethodGet, "/products/brands", nil, nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Categories fetches the category reference list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
