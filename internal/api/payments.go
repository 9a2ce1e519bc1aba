package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// CreatePaymentIntent creates or refreshes the payment intent for the basket
// and returns the updated basket carrying the client secret. A positive
// deliveryMethodID folds that method's cost into the intent amount.
func (c *Client) CreatePaymentIntent(ctx context.Context, basketID string, deliveryMethodID int64) (*domain.Basket, error) {
	var query url.Values
	if deliveryMethodID > 0 {
		query = url.Values{"deliveryMethodId": {strconv.FormatInt(deliveryMethodID, 10)}}
	}

	var basket domain.Basket
	if err := c.do(ctx, http.MethodPost, "/payments/"+basketID, query, nil, &basket); err != nil {
		return nil, err
	}
	return &basket, nil
}
