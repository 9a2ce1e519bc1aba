package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// Basket fetches the remote basket by id.
func (c *Client) Basket(ctx context.Context, id string) (*domain.Basket, error) {
	query := url.Values{"id": {id}}
	var basket domain.Basket
	if err := c.do(ctx, http.MethodGet, "/basket", query, nil, &basket); err != nil {
		return nil, err
	}
	return &basket, nil
}

// SetBasket upserts the basket and returns the server's representation, which
// is authoritative for computed fields such as shippingPrice.
func (c *Client) SetBasket(ctx context.Context, basket *domain.Basket) (*domain.Basket, error) {
	var updated domain.Basket
	if err := c.do(ctx, http.MethodPost, "/basket", nil, basket, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBasket removes the remote basket resource.
func (c *Client) DeleteBasket(ctx context.Context, id string) error {
	query := url.Values{"id": {id}}
	return c.do(ctx, http.MethodDelete, "/basket", query, nil, nil)
}
