package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// DeliveryMethods fetches the delivery catalog.
func (c *Client) DeliveryMethods(ctx context.Context) ([]domain.DeliveryMethod, error) {
	var methods []domain.DeliveryMethod
	if err := c.do(ctx, http.MethodGet, "/orders/deliveryMethods", nil, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// CreateOrder submits the order-creation request. The order service verifies
// the referenced payment intent server-side.
func (c *Client) CreateOrder(ctx context.Context, order domain.OrderToCreate) (*domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Orders fetches the current user's order history.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
